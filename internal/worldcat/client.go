package worldcat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultTokenURL = "https://oauth.oclc.org/token"
	defaultBaseURL  = "https://americas.discovery.api.oclc.org/worldcat/search/v2"

	// tokenSlack renews the cached access token slightly before the
	// server-side expiry to avoid racing it.
	tokenSlack = 30 * time.Second
)

// Client talks to the WorldCat Search API. Authentication uses the OAuth
// client-credentials flow with the wcapi scope; the access token is cached
// and renewed transparently.
type Client struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	httpClient   *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewClient creates a WorldCat client from API credentials.
func NewClient(clientID, clientSecret string) *Client {
	return &Client{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		BaseURL:      defaultBaseURL,
		TokenURL:     defaultTokenURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BibRecord mirrors the subset of the WorldCat bib response the workflow
// reads: titles, creators, publication data, formats, and the contents
// listing.
type BibRecord struct {
	Identifier struct {
		OCLCNumber               string `json:"oclcNumber"`
		OtherStandardIdentifiers []struct {
			Type string `json:"type"`
			ID   string `json:"id"`
		} `json:"otherStandardIdentifiers"`
	} `json:"identifier"`

	Title struct {
		MainTitles []struct {
			Text string `json:"text"`
		} `json:"mainTitles"`
	} `json:"title"`

	Series []struct {
		Title string `json:"title"`
	} `json:"series"`

	Contributor struct {
		Creators []Creator `json:"creators"`
	} `json:"contributor"`

	Publishers []struct {
		PublisherName struct {
			Text string `json:"text"`
		} `json:"publisherName"`
		PublicationPlace string `json:"publicationPlace"`
	} `json:"publishers"`

	Date struct {
		PublicationDate string `json:"publicationDate"`
	} `json:"date"`

	Format struct {
		GeneralFormat  string `json:"generalFormat"`
		SpecificFormat string `json:"specificFormat"`
	} `json:"format"`

	Description struct {
		Contents []struct {
			Titles []string `json:"titles"`
		} `json:"contents"`
	} `json:"description"`
}

// Creator is one entry in a bib record's creators list, either a personal
// name split into parts or a group name.
type Creator struct {
	NonPersonName *struct {
		Text string `json:"text"`
	} `json:"nonPersonName,omitempty"`
	FirstName *struct {
		Text string `json:"text"`
	} `json:"firstName,omitempty"`
	SecondName *struct {
		Text string `json:"text"`
	} `json:"secondName,omitempty"`
}

// Name renders the creator as display text.
func (c Creator) Name() string {
	if c.NonPersonName != nil && c.NonPersonName.Text != "" {
		return c.NonPersonName.Text
	}
	var first, second string
	if c.FirstName != nil {
		first = c.FirstName.Text
	}
	if c.SecondName != nil {
		second = c.SecondName.Text
	}
	return strings.TrimSpace(first + " " + second)
}

// HoldingsInfo summarizes who holds a record.
type HoldingsInfo struct {
	TotalHoldingCount int
	HeldByInstitution bool
}

// GetBib fetches the bibliographic record for one OCLC number.
func (c *Client) GetBib(ctx context.Context, oclcNumber string) (*BibRecord, error) {
	endpoint := fmt.Sprintf("%s/bibs/%s", c.BaseURL, url.PathEscape(oclcNumber))

	body, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bib %s: %w", oclcNumber, err)
	}

	var record BibRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("failed to decode bib response: %w", err)
	}
	return &record, nil
}

// GetBibFormatted fetches a bib record and renders it as the flat text
// blob the verification pipeline parses.
func (c *Client) GetBibFormatted(ctx context.Context, oclcNumber string) (string, error) {
	record, err := c.GetBib(ctx, oclcNumber)
	if err != nil {
		return "", err
	}
	return Format(record), nil
}

// GetHoldings fetches holding counts for one OCLC number, reporting
// whether the institution identified by registryID already holds it.
func (c *Client) GetHoldings(ctx context.Context, oclcNumber, registryID string) (*HoldingsInfo, error) {
	endpoint := c.BaseURL + "/bibs-holdings"
	params := url.Values{
		"oclcNumber": []string{oclcNumber},
		"limit":      []string{"50"},
	}

	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holdings for %s: %w", oclcNumber, err)
	}

	var holdingsResp struct {
		BriefRecords []struct {
			InstitutionHolding struct {
				TotalHoldingCount int `json:"totalHoldingCount"`
				BriefHoldings     []struct {
					RegistryID json.Number `json:"registryId"`
				} `json:"briefHoldings"`
			} `json:"institutionHolding"`
		} `json:"briefRecords"`
	}
	if err := json.Unmarshal(body, &holdingsResp); err != nil {
		return nil, fmt.Errorf("failed to decode holdings response: %w", err)
	}

	info := &HoldingsInfo{}
	if len(holdingsResp.BriefRecords) > 0 {
		holding := holdingsResp.BriefRecords[0].InstitutionHolding
		info.TotalHoldingCount = holding.TotalHoldingCount
		for _, brief := range holding.BriefHoldings {
			if registryID != "" && brief.RegistryID.String() == registryID {
				info.HeldByInstitution = true
			}
		}
	}
	return info, nil
}

// get performs an authenticated GET, refreshing the token as needed.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	slog.Debug("WorldCat API request", "url", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// accessToken returns a valid cached token or requests a new one via the
// client-credentials grant.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{
		"grant_type": []string{"client_credentials"},
		"scope":      []string{"wcapi"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to request access token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get access token: status %d: %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.token = tokenResp.AccessToken
	expiry := time.Duration(tokenResp.ExpiresIn) * time.Second
	if expiry <= tokenSlack {
		expiry = 5 * time.Minute
	}
	c.tokenExpiry = time.Now().Add(expiry - tokenSlack)

	slog.Debug("Obtained WorldCat access token", "expires_in", tokenResp.ExpiresIn)
	return c.token, nil
}
