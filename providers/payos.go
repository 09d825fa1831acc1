package providers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront-service/models"
)

const payOSBaseURL = "https://api-merchant.payos.vn"

// PayOSProvider implements PaymentProvider using the PayOS v2 API.
type PayOSProvider struct {
	clientID    string
	apiKey      string
	checksumKey string
	baseURL     string
	httpClient  *http.Client
}

// NewPayOSProvider creates a new PayOSProvider.
func NewPayOSProvider(clientID, apiKey, checksumKey string) *PayOSProvider {
	return &PayOSProvider{
		clientID:    clientID,
		apiKey:      apiKey,
		checksumKey: checksumKey,
		baseURL:     payOSBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- PayOS API request/response structs ----

type payOSItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

type payOSPaymentRequest struct {
	OrderCode   int64       `json:"orderCode"`
	Amount      int         `json:"amount"`
	Description string      `json:"description"`
	BuyerName   string      `json:"buyerName,omitempty"`
	BuyerEmail  string      `json:"buyerEmail,omitempty"`
	BuyerPhone  string      `json:"buyerPhone,omitempty"`
	Items       []payOSItem `json:"items,omitempty"`
	CancelURL   string      `json:"cancelUrl"`
	ReturnURL   string      `json:"returnUrl"`
	Signature   string      `json:"signature"`
}

type payOSCreateResponse struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data struct {
		CheckoutURL   string `json:"checkoutUrl"`
		PaymentLinkID string `json:"paymentLinkId"`
		Status        string `json:"status"`
	} `json:"data"`
}

// ---- PaymentProvider implementation ----

// CreatePaymentLink registers the payment with PayOS and returns its checkout
// URL.
func (p *PayOSProvider) CreatePaymentLink(ctx context.Context, req models.PaymentRequest) (string, error) {
	items := make([]payOSItem, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, payOSItem{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}

	wireReq := payOSPaymentRequest{
		OrderCode:   req.OrderCode,
		Amount:      req.Amount,
		Description: req.Description,
		BuyerName:   req.BuyerName,
		BuyerEmail:  req.BuyerEmail,
		BuyerPhone:  req.BuyerPhone,
		Items:       items,
		CancelURL:   req.CancelURL,
		ReturnURL:   req.ReturnURL,
	}
	wireReq.Signature = p.sign(wireReq)

	var resp payOSCreateResponse
	if err := p.doRequest(ctx, http.MethodPost, "/v2/payment-requests", wireReq, &resp); err != nil {
		return "", fmt.Errorf("payos CreatePaymentLink: %w", err)
	}

	// "00" is the PayOS success code.
	if resp.Code != "00" {
		return "", fmt.Errorf("payos CreatePaymentLink: %s (code %s)", resp.Desc, resp.Code)
	}
	if resp.Data.CheckoutURL == "" {
		return "", fmt.Errorf("payos CreatePaymentLink: response carried no checkout URL")
	}

	return resp.Data.CheckoutURL, nil
}

// sign computes the request checksum PayOS requires: HMAC-SHA256 over the
// alphabetically-keyed core fields, hex encoded.
func (p *PayOSProvider) sign(req payOSPaymentRequest) string {
	payload := fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		req.Amount, req.CancelURL, req.Description, req.OrderCode, req.ReturnURL)
	mac := hmac.New(sha256.New, []byte(p.checksumKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// ---- HTTP helper ----

func (p *PayOSProvider) doRequest(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-client-id", p.clientID)
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("payos API error (status %d): %s", resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
