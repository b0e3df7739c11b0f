package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/bytedance/sonic"
)

// AuthURL — ссылка авторизации OAuth2, на неё редиректим пользователя.
func AuthURL(baseURL, appID, redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_id", appID)
	q.Set("redirect_uri", redirectURI)
	q.Set("response_type", "code")
	q.Set("state", state)
	return baseURL + "/generate-authcode?" + q.Encode()
}

// ExchangeAuthCode меняет auth code на access token.
// Fyers требует appIdHash = sha256("app_id:app_secret").
func (f *Factory) ExchangeAuthCode(ctx context.Context, appID, appSecret, code string) (string, error) {
	sum := sha256.Sum256([]byte(appID + ":" + appSecret))

	payload, err := sonic.Marshal(map[string]string{
		"grant_type": "authorization_code",
		"appIdHash":  hex.EncodeToString(sum[:]),
		"code":       code,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		f.cfg.Fyers.BaseURL+"/validate-authcode",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	var tok tokenResponse
	if err := sonic.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if tok.S != "ok" || tok.AccessToken == "" {
		return "", fmt.Errorf("fyers auth error: %s", tok.Message)
	}
	return tok.AccessToken, nil
}
