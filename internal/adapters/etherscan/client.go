package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trebuchet-org/katapult/internal/domain"
	"github.com/trebuchet-org/katapult/internal/usecase"
)

// Client talks to Etherscan-compatible explorer APIs (Etherscan, BscScan).
type Client struct {
	httpClient *http.Client
}

// NewClient creates an explorer client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// response is the explorer's common envelope. status "1" means success;
// result carries a GUID on submission and a human-readable string on status
// checks.
type response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Result  string `json:"result"`
}

// SubmitSource posts a single-file source verification request and returns
// the submission GUID.
func (c *Client) SubmitSource(ctx context.Context, req usecase.SubmitRequest) (string, error) {
	data := url.Values{}
	data.Set("apikey", req.APIKey)
	data.Set("module", "contract")
	data.Set("action", "verifysourcecode")
	data.Set("contractaddress", req.ContractAddress)
	data.Set("sourceCode", req.SourceCode)
	data.Set("codeformat", "solidity-single-file")
	data.Set("contractname", req.ContractName)
	data.Set("compilerversion", req.CompilerVersion)
	data.Set("optimizationUsed", boolToString(req.OptimizationEnabled))
	data.Set("runs", fmt.Sprintf("%d", req.OptimizationRuns))
	data.Set("constructorArguements", req.ConstructorArgs) // Etherscan's typo
	data.Set("licenseType", req.LicenseCode)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.APIURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to submit verification: %w", err)
	}
	defer resp.Body.Close()

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse verification response: %w", err)
	}

	if result.Status != "1" {
		return "", &domain.VerificationRejectedError{
			Message: result.Message,
			Result:  result.Result,
		}
	}

	return result.Result, nil
}

// CheckStatus queries the verification status for a submission GUID and
// returns the explorer's result string (e.g. "Pending in queue",
// "Pass - Verified", "Fail - Unable to verify").
func (c *Client) CheckStatus(ctx context.Context, apiURL, apiKey, guid string) (string, error) {
	params := url.Values{}
	params.Set("apikey", apiKey)
	params.Set("module", "contract")
	params.Set("action", "checkverifystatus")
	params.Set("guid", guid)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to check verification status: %w", err)
	}
	defer resp.Body.Close()

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to parse status response: %w", err)
	}

	return result.Result, nil
}

// boolToString converts bool to "0" or "1" for the explorer API.
func boolToString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

var _ usecase.ExplorerClient = (*Client)(nil)
