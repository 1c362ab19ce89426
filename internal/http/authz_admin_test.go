package handlers_test

import (
	"net/http"
	"testing"
)

func TestAdminGuard(t *testing.T) {
	app, db := newAPI(t)

	// Anonymous
	resp := do(t, app, "GET", "/api/admin/quotes", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous: want 401, got %d", resp.StatusCode)
	}

	// Logged-in STAFF is not enough
	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role)
	  VALUES('u-staff','staff@officemart.test','Staff','x','STAFF')`)
	db.MustExec(`INSERT INTO sessions(id,user_id) VALUES('sid-staff','u-staff')`)
	resp = do(t, app, "GET", "/api/admin/quotes", nil, &http.Cookie{Name: "sid", Value: "sid-staff"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("staff: want 403, got %d", resp.StatusCode)
	}

	// Stale cookie with no bound session
	resp = do(t, app, "GET", "/api/admin/quotes", nil, &http.Cookie{Name: "sid", Value: "sid-nobody"})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unbound sid: want 401, got %d", resp.StatusCode)
	}
}

func TestAdminLoginFlow(t *testing.T) {
	app, _ := newAPI(t)

	// Wrong password never reaches a session
	resp := do(t, app, "POST", "/api/admin/login", map[string]string{
		"email": "admin@officemart.test", "password": "WrongPass1!",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: want 401, got %d", resp.StatusCode)
	}

	cookie := adminCookie(t, app)
	resp = do(t, app, "GET", "/api/admin/quotes", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin with session: want 200, got %d", resp.StatusCode)
	}

	// Logout unbinds the session
	resp = do(t, app, "POST", "/api/admin/logout", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: want 200, got %d", resp.StatusCode)
	}
	resp = do(t, app, "GET", "/api/admin/quotes", nil, cookie)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("after logout: want 401, got %d", resp.StatusCode)
	}
}

func TestAdminCategoryWrites(t *testing.T) {
	app, _ := newAPI(t)
	cookie := adminCookie(t, app)

	resp := do(t, app, "POST", "/api/admin/categories",
		map[string]any{"name": "Cleaning Supplies", "show_in_navbar": true, "navbar_order": 3}, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	created := decodeMap(t, resp)
	if created["slug"] != "cleaning-supplies" {
		t.Fatalf("slug not derived from name: %v", created["slug"])
	}

	// Case-insensitive duplicate name
	resp = do(t, app, "POST", "/api/admin/categories", map[string]any{"name": "TECHNOLOGY"}, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate: want 409, got %d", resp.StatusCode)
	}

	// Missing name is a field error
	resp = do(t, app, "POST", "/api/admin/categories", map[string]any{"icon": "Broom"}, cookie)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("missing name: want 422, got %d", resp.StatusCode)
	}

	// Populated subcategories block their delete
	resp = do(t, app, "DELETE", "/api/admin/subcategories/sub-pens", nil, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("populated subcategory delete: want 409, got %d", resp.StatusCode)
	}
	resp = do(t, app, "DELETE", "/api/admin/subcategories/sub-paper", nil, cookie)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("empty subcategory delete: want 204, got %d", resp.StatusCode)
	}
}

func TestAdminProductWrites(t *testing.T) {
	app, _ := newAPI(t)
	cookie := adminCookie(t, app)

	in := map[string]any{
		"name":        "Stapler Heavy Duty",
		"sku":         "STP-100",
		"subcategory": "sub-paper",
		"price":       49.0,
		"stock_count": 10,
	}
	resp := do(t, app, "POST", "/api/admin/products", in, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	created := decodeMap(t, resp)
	if created["slug"] != "stapler-heavy-duty" || created["product_type"] != "new" {
		t.Fatalf("normalization missing: slug=%v type=%v", created["slug"], created["product_type"])
	}

	// Write-time invariants answer as field errors
	bad := map[string]any{
		"name": "Projector Rental", "sku": "PRJ-01", "subcategory": "sub-paper",
		"product_type": "rental", "price": 0.0,
	}
	resp = do(t, app, "POST", "/api/admin/products", bad, cookie)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("rental without rates: want 422, got %d", resp.StatusCode)
	}

	// Duplicate SKU
	in["name"] = "Other Stapler"
	resp = do(t, app, "POST", "/api/admin/products", in, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate sku: want 409, got %d", resp.StatusCode)
	}

	// Image attach with alt-text autofill
	id := created["id"].(string)
	resp = do(t, app, "POST", "/api/admin/products/"+id+"/images",
		map[string]any{"image": "products/staplers/stp-100.jpg", "order": 1}, cookie)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("add image: want 201, got %d", resp.StatusCode)
	}
	img := decodeMap(t, resp)
	if img["alt_text"] != "Stapler Heavy Duty - Image 1" {
		t.Fatalf("alt text not derived: %v", img["alt_text"])
	}
}

func TestAdminUpdateErrorMapping(t *testing.T) {
	app, db := newAPI(t)
	cookie := adminCookie(t, app)

	// moving a subcategory under an unknown category is a field error,
	// not a uniqueness conflict
	resp := do(t, app, "PUT", "/api/admin/subcategories/sub-pens",
		map[string]any{"name": "Pens", "category": "cat-ghost"}, cookie)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unknown category on update: want 422, got %d", resp.StatusCode)
	}
	errs := decodeMap(t, resp)["errors"].(map[string]any)
	if errs["category"] == nil {
		t.Fatalf("missing category field error: %v", errs)
	}

	body := map[string]any{
		"name": "Ballpoint Pen Box (50)", "sku": "PEN-050",
		"subcategory": "sub-pens", "price": 24.0, "stock_count": 120,
	}

	// unknown product id answers 404
	resp = do(t, app, "PUT", "/api/admin/products/prd-ghost", body, cookie)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown product update: want 404, got %d", resp.StatusCode)
	}

	// taking another product's sku answers 409
	body["sku"] = "PRT-M404"
	resp = do(t, app, "PUT", "/api/admin/products/prd-pen-01", body, cookie)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("sku collision on update: want 409, got %d", resp.StatusCode)
	}

	// a genuine storage failure is a 500, never dressed up as 404
	db.MustExec(`PRAGMA foreign_keys = OFF`)
	db.MustExec(`DROP TABLE products`)
	body["sku"] = "PEN-050"
	resp = do(t, app, "PUT", "/api/admin/products/prd-pen-01", body, cookie)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("storage failure: want 500, got %d", resp.StatusCode)
	}
}

func TestAdminQuoteConsole(t *testing.T) {
	app, _ := newAPI(t)
	cookie := adminCookie(t, app)

	resp := do(t, app, "POST", "/api/quotes", validQuoteBody())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("seed quote: want 201, got %d", resp.StatusCode)
	}
	quoteID := decodeMap(t, resp)["data"].(map[string]any)["id"].(string)

	list := decodeList(t, do(t, app, "GET", "/api/admin/quotes", nil, cookie))
	if len(list) != 1 || list[0]["id"] != quoteID {
		t.Fatalf("console list missing the quote: %v", list)
	}

	// Unknown status token is a field error
	resp = do(t, app, "POST", "/api/admin/quotes/"+quoteID+"/status",
		map[string]any{"status": "shipped"}, cookie)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("unknown status: want 422, got %d", resp.StatusCode)
	}

	resp = do(t, app, "POST", "/api/admin/quotes/"+quoteID+"/status",
		map[string]any{"status": "processing", "admin_notes": "handed to sales"}, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status update: want 200, got %d", resp.StatusCode)
	}
	updated := decodeMap(t, resp)
	if updated["status"] != "processing" || updated["admin_notes"] != "handed to sales" {
		t.Fatalf("update not reflected: %v", updated)
	}

	resp = do(t, app, "POST", "/api/admin/quotes/q-ghost/status",
		map[string]any{"status": "processing"}, cookie)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown quote: want 404, got %d", resp.StatusCode)
	}
}
