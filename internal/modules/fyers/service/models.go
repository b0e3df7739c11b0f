package service

// Конверт Fyers: s == "ok" либо ошибка с message.
// Свеча — массив [epoch, open, high, low, close, volume].
type historyResponse struct {
	S       string      `json:"s"`
	Message string      `json:"message"`
	Candles [][]float64 `json:"candles"`
}

type quotesResponse struct {
	S       string `json:"s"`
	Message string `json:"message"`
	D       []struct {
		N string `json:"n"`
		V struct {
			LP     float64 `json:"lp"`
			Ch     float64 `json:"ch"`
			Chp    float64 `json:"chp"`
			Volume int64   `json:"volume"`
		} `json:"v"`
	} `json:"d"`
}

type tokenResponse struct {
	S           string `json:"s"`
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

type profileResponse struct {
	S    string `json:"s"`
	Data struct {
		Name  string `json:"name"`
		Email string `json:"email_id"`
		FyID  string `json:"fy_id"`
	} `json:"data"`
}
