package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hillcountrygardens/backend/internal/models"
)

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": env.cfg.AdminUsername,
		"password": "definitely-wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401: %s", rec.Code, rec.Body.String())
	}
}

func TestAdminSeesUnpublishedPostPublicDoesNot(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/blog", token, gin.H{
		"title":   "Winter Prep Checklist",
		"excerpt": "Draft for December",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", rec.Code, rec.Body.String())
	}
	var post models.BlogPost
	decodeBody(t, rec, &post)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/blog/"+post.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin fetch: status = %d: %s", rec.Code, rec.Body.String())
	}

	if rec = env.do(t, http.MethodGet, "/api/v1/public/blog/"+post.Slug, "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("public fetch of draft: status = %d, want 404", rec.Code)
	}
}

func TestReviewModerationFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/public/reviews", "", gin.H{
		"author": "Casey",
		"rating": 5,
		"text":   "Picked up a flat of lantana, all thriving.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", rec.Code, rec.Body.String())
	}
	var review models.Review
	decodeBody(t, rec, &review)

	// Unapproved reviews stay out of the public listing
	rec = env.do(t, http.MethodGet, "/api/v1/public/reviews", "", nil)
	var publicList struct {
		Reviews []models.Review `json:"reviews"`
	}
	decodeBody(t, rec, &publicList)
	if len(publicList.Reviews) != 0 {
		t.Fatalf("unapproved review visible publicly: %+v", publicList.Reviews)
	}

	rec = env.do(t, http.MethodPut, "/api/v1/admin/reviews/"+review.ID.String()+"/approve", token, gin.H{"approved": true})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/public/reviews", "", nil)
	decodeBody(t, rec, &publicList)
	if len(publicList.Reviews) != 1 || publicList.Reviews[0].ID != review.ID {
		t.Fatalf("approved review missing publicly: %+v", publicList.Reviews)
	}
}

func TestReviewRejectsOutOfRangeRating(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/public/reviews", "", gin.H{
		"author": "Casey",
		"rating": 9,
		"text":   "Too enthusiastic.",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestNewsletterSubscribeTwiceKeepsOneRow(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/api/v1/public/newsletter", "", gin.H{"email": "gardener@example.com"})
		if rec.Code != http.StatusCreated {
			t.Fatalf("subscribe %d: status = %d: %s", i, rec.Code, rec.Body.String())
		}
	}

	rec := env.do(t, http.MethodGet, "/api/v1/admin/newsletter", token, nil)
	var list struct {
		Subscribers []models.NewsletterSubscriber `json:"subscribers"`
	}
	decodeBody(t, rec, &list)
	if len(list.Subscribers) != 1 {
		t.Fatalf("subscriber count = %d, want 1", len(list.Subscribers))
	}
}

func TestContactFormSubmission(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/public/contact", "", gin.H{
		"name":    "Jordan",
		"email":   "jordan@example.com",
		"message": "Do you carry bigtooth maples?",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/admin/contact", token, nil)
	var list struct {
		Messages []models.ContactMessage `json:"messages"`
	}
	decodeBody(t, rec, &list)
	if len(list.Messages) != 1 || list.Messages[0].Read {
		t.Fatalf("messages = %+v", list.Messages)
	}
}

func TestBusinessHoursPutRequiresAuthAndValidates(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	hours := gin.H{
		"monday":    gin.H{"open": "08:00", "close": "18:00"},
		"tuesday":   gin.H{"open": "08:00", "close": "18:00"},
		"wednesday": gin.H{"open": "08:00", "close": "18:00"},
		"thursday":  gin.H{"open": "08:00", "close": "18:00"},
		"friday":    gin.H{"open": "08:00", "close": "18:00"},
		"saturday":  gin.H{"open": "09:00", "close": "15:00"},
		"sunday":    gin.H{"closed": true},
	}

	if rec := env.do(t, http.MethodPut, "/api/v1/admin/settings/business-hours", "", hours); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated put: status = %d", rec.Code)
	}

	rec := env.do(t, http.MethodPut, "/api/v1/admin/settings/business-hours", token, hours)
	if rec.Code != http.StatusOK {
		t.Fatalf("put: status = %d: %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/v1/public/settings/business-hours", "", nil)
	var stored models.BusinessHours
	decodeBody(t, rec, &stored)
	if stored.Monday.Open != "08:00" || !stored.Sunday.Closed {
		t.Fatalf("stored hours = %+v", stored)
	}

	bad := gin.H{"monday": gin.H{"open": "late", "close": "18:00"}}
	if rec := env.do(t, http.MethodPut, "/api/v1/admin/settings/business-hours", token, bad); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid hours: status = %d: %s", rec.Code, rec.Body.String())
	}
}
