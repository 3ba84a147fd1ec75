package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// mapHTTPError converts a non-2xx response into an error. Bodies carrying a
// remote error code become a [*RemoteError]; otherwise the status decides.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var remote RemoteError
	if err := json.Unmarshal(resp.Body(), &remote); err == nil && remote.Code != "" {
		remote.StatusCode = resp.StatusCode()
		if remote.Code == CodeRateLimitReached && remote.RateLimitSeconds == 0 {
			remote.RateLimitSeconds = retryAfterSeconds(resp)
		}
		return &remote
	}

	switch resp.StatusCode() {
	case http.StatusTooManyRequests:
		return &RemoteError{
			Code:             CodeRateLimitReached,
			RateLimitSeconds: retryAfterSeconds(resp),
			Message:          body,
			StatusCode:       resp.StatusCode(),
		}
	case http.StatusUnauthorized:
		return &RemoteError{Code: CodeAuthExpired, Message: body, StatusCode: resp.StatusCode()}
	case http.StatusConflict:
		return &RemoteError{Code: CodeDataConflict, Message: body, StatusCode: resp.StatusCode()}
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: http %d: %s", ErrServiceUnavailable, resp.StatusCode(), body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return &RemoteError{Code: CodeUnknown, Message: fmt.Sprintf("http %d: %s", resp.StatusCode(), body), StatusCode: resp.StatusCode()}
	}
}

func retryAfterSeconds(resp *resty.Response) int {
	seconds, err := strconv.Atoi(strings.TrimSpace(resp.Header().Get("Retry-After")))
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
