package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/models"
)

func TestAdminRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/categories", "", gin.H{"name": "Trees"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/admin/categories", "not-a-jwt", gin.H{"name": "Trees"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d", rec.Code)
	}
}

func TestCategoryCreateThenFetchRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/categories", token, gin.H{
		"name":        "Native Perennials",
		"description": "Hardy bloomers for central Texas",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Category
	decodeBody(t, rec, &created)
	if created.Slug != "native-perennials" {
		t.Fatalf("slug = %q", created.Slug)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/public/categories/native-perennials", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch: status = %d", rec.Code)
	}
	var fetched models.Category
	decodeBody(t, rec, &fetched)
	if fetched.ID != created.ID || fetched.Description != created.Description {
		t.Fatalf("round trip mismatch: %+v vs %+v", fetched, created)
	}
}

func TestPublicProductsHideInactive(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/categories", token, gin.H{"name": "Succulents"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("category: status = %d", rec.Code)
	}
	var category models.Category
	decodeBody(t, rec, &category)

	for _, p := range []gin.H{
		{"category_id": category.ID, "name": "Ghost Plant", "price": 8.99},
		{"category_id": category.ID, "name": "Retired Agave", "price": 24.99, "active": false},
	} {
		if rec := env.do(t, http.MethodPost, "/api/v1/admin/products", token, p); rec.Code != http.StatusCreated {
			t.Fatalf("product %v: status = %d: %s", p["name"], rec.Code, rec.Body.String())
		}
	}

	rec = env.do(t, http.MethodGet, "/api/v1/public/products", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public list: status = %d", rec.Code)
	}
	var publicList struct {
		Products []models.Product `json:"products"`
	}
	decodeBody(t, rec, &publicList)
	if len(publicList.Products) != 1 || publicList.Products[0].Name != "Ghost Plant" {
		t.Fatalf("public listing = %+v", publicList.Products)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/products", token, nil)
	var adminList struct {
		Products []models.Product `json:"products"`
	}
	decodeBody(t, rec, &adminList)
	if len(adminList.Products) != 2 {
		t.Fatalf("admin listing count = %d, want 2", len(adminList.Products))
	}
}

func TestDeleteProductThenFetch404(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/categories", token, gin.H{"name": "Vines"})
	var category models.Category
	decodeBody(t, rec, &category)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/products", token, gin.H{
		"category_id": category.ID, "name": "Crossvine", "price": 14.50,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", rec.Code, rec.Body.String())
	}
	var product models.Product
	decodeBody(t, rec, &product)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/products/"+product.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d: %s", rec.Code, rec.Body.String())
	}

	if rec = env.do(t, http.MethodGet, "/api/v1/public/products/crossvine", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("fetch after delete: status = %d, want 404", rec.Code)
	}
	if rec = env.do(t, http.MethodDelete, "/api/v1/admin/products/"+product.ID.String(), token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", rec.Code)
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/products", token, gin.H{
		"category_id": "7b8259ae-34a4-4a36-9f36-3fcafa1cf4ed",
		"name":        "Orphan Plant",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}
