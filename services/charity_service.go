package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"

	"fundraising-room-system/models"
	"fundraising-room-system/utils"

	"github.com/gofiber/fiber/v2"
)

// CharityService proxies The Giving Block's charity directory so the frontend
// never holds the API key. Charity lookups are advisory; room creation only
// ever trusts the charity wallet supplied by the host.
type CharityService struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewCharityService() *CharityService {
	baseURL := os.Getenv("TGB_API_URL")
	if baseURL == "" {
		baseURL = "https://api.thegivingblock.com/v1"
	}
	return &CharityService{
		BaseURL: baseURL,
		APIKey:  os.Getenv("TGB_API_KEY"),
		Client:  utils.HTTPClient,
	}
}

// SearchCharities forwards a text search to the charity directory.
func (s *CharityService) SearchCharities(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "q is required"})
	}

	endpoint := fmt.Sprintf("%s/charities?q=%s", s.BaseURL, url.QueryEscape(query))
	body, status, err := s.get(endpoint)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "charity directory unreachable"})
	}
	if status != http.StatusOK {
		log.Printf("Charity directory search returned %d: %s", status, string(body))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "charity directory error"})
	}

	var charities []models.Charity
	if err := json.Unmarshal(body, &charities); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "charity directory error"})
	}
	return c.JSON(fiber.Map{"charities": charities, "count": len(charities)})
}

// GetCharityAddress fetches a charity's donation address for one token.
func (s *CharityService) GetCharityAddress(c *fiber.Ctx) error {
	charityID := c.Params("id")
	token := c.Params("token")

	endpoint := fmt.Sprintf("%s/charities/%s/address/%s",
		s.BaseURL, url.PathEscape(charityID), url.PathEscape(token))
	body, status, err := s.get(endpoint)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "charity directory unreachable"})
	}
	if status == http.StatusNotFound {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "charity or token not found"})
	}
	if status != http.StatusOK {
		log.Printf("Charity directory address lookup returned %d: %s", status, string(body))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "charity directory error"})
	}

	var address models.DonationAddress
	if err := json.Unmarshal(body, &address); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "charity directory error"})
	}
	return c.JSON(address)
}

func (s *CharityService) get(endpoint string) ([]byte, int, error) {
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode, nil
}
