package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hillcountrygardens/backend/internal/models"
)

func seedImage(t *testing.T, env *testEnv) *models.GalleryImage {
	t.Helper()
	image := &models.GalleryImage{
		Title:    "Bed by the front gate",
		ImageURL: "http://media.test/images/front-gate.jpg",
		Category: "display-gardens",
	}
	if err := env.gallery.CreateImage(image, []string{"summer"}); err != nil {
		t.Fatalf("seed image: %v", err)
	}
	return image
}

func TestIdentifyReturnsAcceptedBeforeCompletion(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	image := seedImage(t, env)

	// Vision reply used once the background worker gets to the job
	modelJSON := `{
		"common_name": "Esperanza",
		"latin_name": "Tecoma stans",
		"hardiness_zone": "8-11",
		"sun_preference": "full sun",
		"drought_tolerance": "high",
		"texas_native": true,
		"indoor_outdoor": "outdoor",
		"plant_classification": "shrub",
		"description": "Yellow bells that bloom all summer."
	}`
	chat, _ := json.Marshal(map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": modelJSON}},
		},
	})

	released := make(chan struct{})
	env.vision.SetHTTPClient(&http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			<-released
			return jsonBody(http.StatusOK, string(chat)), nil
		}),
	})
	env.identify.SetHTTPClient(&http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader([]byte("jpeg-bytes"))),
			}, nil
		}),
	})

	// The request returns while the vision call is still blocked
	done := make(chan *int, 1)
	go func() {
		rec := env.do(t, http.MethodPost, "/api/v1/admin/gallery/"+image.ID.String()+"/identify", token, nil)
		done <- &rec.Code
	}()

	select {
	case code := <-done:
		if *code != http.StatusAccepted {
			t.Fatalf("identify: status = %d, want 202", *code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("identify request did not return while pipeline was in flight")
	}

	stored, err := env.gallery.GetImageByID(image.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.IdentifyStatus != models.IdentifyStatusPending {
		t.Fatalf("status while in flight = %q, want pending", stored.IdentifyStatus)
	}

	close(released)
	env.identify.Shutdown() // waits for the worker to finish the job

	stored, err = env.gallery.GetImageByID(image.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.IdentifyStatus != models.IdentifyStatusSucceeded {
		t.Fatalf("final status = %q, want succeeded", stored.IdentifyStatus)
	}
	if stored.CommonName == nil || *stored.CommonName != "Esperanza" {
		t.Fatalf("common name = %v", stored.CommonName)
	}
	if stored.Title != "Esperanza (Tecoma stans)" {
		t.Fatalf("title = %q", stored.Title)
	}
}

func TestIdentifyUnknownImage404(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	rec := env.do(t, http.MethodPost, "/api/v1/admin/gallery/0c0ffe60-0000-4000-8000-000000000001/identify", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func uploadRequest(t *testing.T, token string, filename string, fileData []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(fileData); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if err := form.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/gallery", body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestGalleryUploadCreatesRecord(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	req := uploadRequest(t, token, "bluebonnets.png", smallPNG(t), map[string]string{
		"title":    "Bluebonnet patch",
		"category": "wildflowers",
	})
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: status = %d: %s", rec.Code, rec.Body.String())
	}

	var image models.GalleryImage
	decodeBody(t, rec, &image)
	if image.Title != "Bluebonnet patch" || image.Category != "wildflowers" {
		t.Fatalf("record = %+v", image)
	}
	if !strings.Contains(image.ImageURL, "/test-images/images/") || !strings.HasSuffix(image.ImageURL, ".png") {
		t.Fatalf("image url = %q", image.ImageURL)
	}

	stored, err := env.gallery.GetImageByID(image.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.ImageURL != image.ImageURL {
		t.Fatal("stored record does not match response")
	}
}

func TestGalleryUploadRejectsNonImage(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	req := uploadRequest(t, token, "notes.png", []byte("just some text"), nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestGalleryListAndUpdate(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	image := seedImage(t, env)

	rec := env.do(t, http.MethodGet, "/api/v1/public/gallery?category=display-gardens", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rec.Code)
	}
	var list struct {
		Images []models.GalleryImage `json:"images"`
	}
	decodeBody(t, rec, &list)
	if len(list.Images) != 1 || list.Images[0].ID != image.ID {
		t.Fatalf("listing = %+v", list.Images)
	}

	rec = env.do(t, http.MethodPut, "/api/v1/admin/gallery/"+image.ID.String(), token, map[string]interface{}{
		"title":    "Front gate in June",
		"featured": true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d: %s", rec.Code, rec.Body.String())
	}

	stored, _ := env.gallery.GetImageByID(image.ID)
	if stored.Title != "Front gate in June" || !stored.Featured {
		t.Fatalf("update not applied: %+v", stored)
	}
}

func TestGalleryDeleteRemovesStoredObject(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)
	image := seedImage(t, env)

	rec := env.do(t, http.MethodDelete, "/api/v1/admin/gallery/"+image.ID.String(), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d: %s", rec.Code, rec.Body.String())
	}

	if _, err := env.gallery.GetImageByID(image.ID); err == nil {
		t.Fatal("record still present after delete")
	}

	// The bucket object behind the image URL goes away with the record
	var deleted bool
	for _, req := range env.s3Log() {
		if req == "DELETE /test-images/images/front-gate.jpg" {
			deleted = true
		}
	}
	if !deleted {
		t.Fatalf("no delete request for the stored object, saw %v", env.s3Log())
	}
}
