package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hillcountrygardens/backend/internal/config"
	"github.com/hillcountrygardens/backend/internal/models"
)

// ErrVisionParse is returned when the model reply is not usable JSON or is
// missing the mandatory fields
var ErrVisionParse = errors.New("unparseable vision model response")

const identifyPrompt = `You are a plant identification expert. Look at this photo and identify the plant. Respond with a JSON object containing exactly these fields:
{
  "common_name": "the plant's common name",
  "latin_name": "the botanical latin name",
  "hardiness_zone": "USDA hardiness zone range, e.g. 8-11",
  "sun_preference": "full sun, partial shade, or full shade",
  "drought_tolerance": "low, moderate, or high",
  "texas_native": true or false,
  "indoor_outdoor": "indoor, outdoor, or both",
  "plant_classification": "one of: tree, shrub, herb, succulent, vine, grass, fern, annual, perennial",
  "description": "two or three sentences about the plant and its care"
}
Use the string "unknown" for any field you cannot determine. If the photo shows multiple plant species rather than one, set every field to "unknown" except description, and describe the visible plant types instead. Respond with only the JSON object, no other text.`

// VisionService calls an OpenAI-compatible vision model to identify the
// plant in a photo. Calls are single-shot; the identification pipeline is
// best-effort and does not retry.
type VisionService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewVisionService(cfg *config.Config) *VisionService {
	return &VisionService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.VisionTimeout},
	}
}

// SetHTTPClient overrides the HTTP client, used by tests
func (s *VisionService) SetHTTPClient(client *http.Client) {
	s.httpClient = client
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawIdentification is the model's JSON shape before sentinel mapping.
// texas_native is json.RawMessage because the model may return a boolean or
// the string "unknown" there.
type rawIdentification struct {
	CommonName          string          `json:"common_name"`
	LatinName           string          `json:"latin_name"`
	HardinessZone       string          `json:"hardiness_zone"`
	SunPreference       string          `json:"sun_preference"`
	DroughtTolerance    string          `json:"drought_tolerance"`
	TexasNative         json.RawMessage `json:"texas_native"`
	IndoorOutdoor       string          `json:"indoor_outdoor"`
	PlantClassification string          `json:"plant_classification"`
	Description         string          `json:"description"`
}

// IdentifyPlant submits JPEG image bytes to the vision model and returns the
// mapped identification. "unknown" sentinel values come back as nil fields.
func (s *VisionService) IdentifyPlant(ctx context.Context, jpegData []byte) (*PlantIdentification, error) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpegData)

	reqBody := chatCompletionRequest{
		Model: s.cfg.VisionModel,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: identifyPrompt},
					{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
				},
			},
		},
		MaxTokens: 800,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(s.cfg.VisionBaseURL, "/")+"/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.VisionAPIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read vision response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("decode vision response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, ErrVisionParse
	}

	return parseIdentification(completion.Choices[0].Message.Content)
}

// parseIdentification parses the model's reply text into a
// PlantIdentification, stripping any markdown code fence the model wrapped
// the JSON in
func parseIdentification(content string) (*PlantIdentification, error) {
	content = stripCodeFence(content)

	var raw rawIdentification
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, ErrVisionParse
	}

	// common_name and description must be present; "unknown" is a valid
	// common_name (multi-species photos) and maps to nil below
	if strings.TrimSpace(raw.CommonName) == "" || strings.TrimSpace(raw.Description) == "" {
		return nil, ErrVisionParse
	}

	result := &PlantIdentification{
		CommonName:          sentinelToNil(raw.CommonName),
		LatinName:           sentinelToNil(raw.LatinName),
		HardinessZone:       sentinelToNil(raw.HardinessZone),
		SunPreference:       sentinelToNil(raw.SunPreference),
		DroughtTolerance:    sentinelToNil(raw.DroughtTolerance),
		TexasNative:         boolOrNil(raw.TexasNative),
		IndoorOutdoor:       sentinelToNil(raw.IndoorOutdoor),
		PlantClassification: classificationOrNil(raw.PlantClassification),
		Description:         raw.Description,
	}
	return result, nil
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}

// sentinelToNil maps the model's "unknown" sentinel (and empty strings) to nil
func sentinelToNil(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "unknown") {
		return nil
	}
	return &value
}

// boolOrNil stores texas_native only when the model returned an actual
// boolean
func boolOrNil(raw json.RawMessage) *bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil
	}
	return &b
}

// classificationOrNil keeps only values from the closed classification set
func classificationOrNil(value string) *string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, known := range models.PlantClassifications {
		if value == known {
			return &value
		}
	}
	return nil
}
