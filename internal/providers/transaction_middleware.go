package providers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// TransactionHeader carries the transaction id across services.
const TransactionHeader = "txid"

type txidKey struct{}

// TransactionMiddleware propagates the inbound transaction id or assigns a new one.
func TransactionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		txid := r.Header.Get(TransactionHeader)
		if txid == "" {
			txid = uuid.NewString()
		}
		w.Header().Set(TransactionHeader, txid)
		next.ServeHTTP(w, r.WithContext(WithTransactionID(r.Context(), txid)))
	})
}

func WithTransactionID(ctx context.Context, txid string) context.Context {
	return context.WithValue(ctx, txidKey{}, txid)
}

// TransactionID returns the transaction id stored in ctx, or "n/a".
func TransactionID(ctx context.Context) string {
	if txid, ok := ctx.Value(txidKey{}).(string); ok && txid != "" {
		return txid
	}
	return "n/a"
}
