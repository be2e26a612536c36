package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finances/internal/domain"
)

// CoinGeckoClient implements usecase.CryptoQuoteSource against the
// CoinGecko simple price API. Quotes are fetched on demand and never
// cached here.
type CoinGeckoClient struct {
	baseURL string
	client  *http.Client
}

// NewCoinGeckoClient creates a new CoinGeckoClient.
func NewCoinGeckoClient(baseURL string, timeout time.Duration) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// symbolToID maps common ticker symbols to CoinGecko coin ids. Codes not
// listed are tried lower-cased as-is.
var symbolToID = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"SOL":  "solana",
	"ADA":  "cardano",
	"DOT":  "polkadot",
	"DOGE": "dogecoin",
	"XRP":  "ripple",
	"LTC":  "litecoin",
	"USDT": "tether",
	"USDC": "usd-coin",
}

// Quote returns the currency's USD price.
func (c *CoinGeckoClient) Quote(ctx context.Context, code string) (decimal.Decimal, error) {
	id := coinID(code)

	endpoint := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, url.QueryEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("quote request failed: %s", resp.Status)
	}

	var payload map[string]struct {
		USD json.Number `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, err
	}

	quote, ok := payload[id]
	if !ok || quote.USD == "" {
		return decimal.Zero, domain.ErrRateUnavailable
	}

	price, err := decimal.NewFromString(quote.USD.String())
	if err != nil {
		return decimal.Zero, err
	}

	return price, nil
}

func coinID(code string) string {
	if id, ok := symbolToID[strings.ToUpper(code)]; ok {
		return id
	}

	return strings.ToLower(code)
}
