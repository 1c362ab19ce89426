package handlers_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestListingUnknownTypeToken(t *testing.T) {
	app, _ := newAPI(t)

	resp := do(t, app, "GET", "/api/listing/vintage", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
	body := decodeMap(t, resp)
	if !strings.Contains(body["error"].(string), "vintage") {
		t.Fatalf("error does not name the bad token: %v", body["error"])
	}
	valid, ok := body["valid_types"].([]any)
	if !ok || len(valid) != 3 {
		t.Fatalf("want 3 valid types, got %v", body["valid_types"])
	}
}

func TestListingRoutes(t *testing.T) {
	app, _ := newAPI(t)

	cases := []struct {
		path  string
		count float64
	}{
		{"/api/listing/rental", 1},
		{"/api/listing/category/office-supplies", 1},
		{"/api/listing/refurbished/technology", 1},
		{"/api/listing/new/technology", 0},
	}
	for _, tc := range cases {
		resp := do(t, app, "GET", tc.path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: want 200, got %d", tc.path, resp.StatusCode)
		}
		body := decodeMap(t, resp)
		if body["count"] != tc.count {
			t.Fatalf("%s: want count %v, got %v", tc.path, tc.count, body["count"])
		}
	}

	resp := do(t, app, "GET", "/api/listing/category/no-such", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown category slug: want 404, got %d", resp.StatusCode)
	}
}

func TestProductDetail(t *testing.T) {
	app, _ := newAPI(t)

	resp := do(t, app, "GET", "/api/products/ballpoint-pen-box-50", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body := decodeMap(t, resp)

	if body["final_price"] != 24.00 || body["discount_amount"] != 6.00 || body["is_on_sale"] != true {
		t.Fatalf("bad derived pricing: final=%v amount=%v on_sale=%v",
			body["final_price"], body["discount_amount"], body["is_on_sale"])
	}
	if body["stock_status"] != "In Stock" {
		t.Fatalf("want In Stock, got %v", body["stock_status"])
	}
	main, _ := body["main_image"].(string)
	if main != "https://media.officemart.test/products/pens/ballpoint-box.jpg" {
		t.Fatalf("main image not resolved to media host: %v", main)
	}
	imgs, _ := body["images"].([]any)
	if len(imgs) != 1 {
		t.Fatalf("want 1 extra image, got %v", body["images"])
	}

	resp = do(t, app, "GET", "/api/products/no-such-product", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown slug: want 404, got %d", resp.StatusCode)
	}
}

func TestProductShortcutsNotShadowedBySlugRoute(t *testing.T) {
	app, _ := newAPI(t)

	feat := decodeList(t, do(t, app, "GET", "/api/products/featured", nil))
	if len(feat) != 2 {
		t.Fatalf("want 2 featured, got %d", len(feat))
	}
	rentals := decodeList(t, do(t, app, "GET", "/api/products/rental", nil))
	if len(rentals) != 1 || rentals[0]["slug"] != "thinkpad-t14-rental" {
		t.Fatalf("bad rental shortcut: %v", rentals)
	}
}

func TestProductListFiltersAndPagination(t *testing.T) {
	app, _ := newAPI(t)

	body := decodeMap(t, do(t, app, "GET", "/api/products?page_size=1", nil))
	if body["count"] != 3.0 || body["page_size"] != 1.0 {
		t.Fatalf("want count 3 page_size 1, got %v / %v", body["count"], body["page_size"])
	}
	if len(body["results"].([]any)) != 1 {
		t.Fatal("page_size=1 returned more than one row")
	}

	body = decodeMap(t, do(t, app, "GET", "/api/products?search=laser&product_type=refurbished", nil))
	if body["count"] != 1.0 {
		t.Fatalf("filtered search: want 1, got %v", body["count"])
	}

	resp := do(t, app, "GET", "/api/products?in_stock=banana", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad boolean param: want 400, got %d", resp.StatusCode)
	}
}

func TestCategoryEndpoints(t *testing.T) {
	app, _ := newAPI(t)

	all := decodeList(t, do(t, app, "GET", "/api/categories", nil))
	if len(all) != 3 {
		t.Fatalf("want 3 categories, got %d", len(all))
	}
	nav := decodeList(t, do(t, app, "GET", "/api/categories?navbar=true", nil))
	if len(nav) != 2 {
		t.Fatalf("want 2 navbar categories, got %d", len(nav))
	}

	body := decodeMap(t, do(t, app, "GET", "/api/categories/office-supplies", nil))
	subs, _ := body["subcategories"].([]any)
	if len(subs) != 2 {
		t.Fatalf("want 2 subcategories, got %v", body["subcategories"])
	}
	if body["product_count"] != 1.0 {
		t.Fatalf("want product_count 1, got %v", body["product_count"])
	}

	sub := decodeMap(t, do(t, app, "GET", "/api/subcategories/printers", nil))
	if sub["category_name"] != "Technology" || sub["product_count"] != 1.0 {
		t.Fatalf("bad subcategory payload: %v", sub)
	}
}
