package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/device"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const DeviceSecretHeader = "X-Device-Secret"

type deviceCtxKey struct{}

// DeviceSecretRequired authenticates an enrolled reader by the {mac} path
// parameter and its ingest secret. Use it on routes that declare {mac}.
func DeviceSecretRequired(devices device.DeviceService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d, err := devices.VerifySecret(r.Context(), chi.URLParam(r, "mac"), r.Header.Get(DeviceSecretHeader))
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), deviceCtxKey{}, d)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DeviceFromContext returns the reader authenticated by DeviceSecretRequired.
func DeviceFromContext(ctx context.Context) (device.Device, bool) {
	d, ok := ctx.Value(deviceCtxKey{}).(device.Device)
	return d, ok
}
