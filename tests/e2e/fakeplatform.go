//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// ------------------------------------------------------------
// コマースとサブスクリプションの両GraphQL APIを1つのサーバーで模倣
// ------------------------------------------------------------

const (
	FakeOrderID        = "gid://shopify/Order/42"
	FakeCoffeeProduct  = "gid://shopify/Product/1"
	FakeCoffeeVariant  = "gid://shopify/ProductVariant/101"
	FakeMugProduct     = "gid://shopify/Product/2"
	FakeMugVariant     = "gid://shopify/ProductVariant/201"
	FakeCompensationID = "gid://shopify/ProductVariant/9001"
)

type FakeSubscription struct {
	ID              string
	CyclesCompleted int
	Email           string
	Province        string
	ProvinceCode    string
}

type FakeDraftOrder struct {
	ID       string
	Status   string
	Quantity int
	Email    string
	Invoices int
}

type FakePlatform struct {
	Server *httptest.Server

	mu            sync.Mutex
	subscriptions map[string]FakeSubscription
	drafts        map[string]*FakeDraftOrder
	cancelled     map[string]string // subscription -> cancel session
	nextDraft     int
	failCancel    bool
}

func NewFakePlatform(t *testing.T) *FakePlatform {
	t.Helper()
	f := &FakePlatform{}
	f.Reset()
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Server.Close)
	return f
}

func (f *FakePlatform) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscriptions = map[string]FakeSubscription{}
	f.drafts = map[string]*FakeDraftOrder{}
	f.cancelled = map[string]string{}
	f.nextDraft = 1000
	f.failCancel = false
}

func (f *FakePlatform) PutSubscription(s FakeSubscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscriptions[s.ID] = s
}

func (f *FakePlatform) MarkPaid(draftID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.drafts[draftID]; ok {
		d.Status = "COMPLETED"
	}
}

func (f *FakePlatform) FailCancellations(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCancel = fail
}

func (f *FakePlatform) Draft(id string) (FakeDraftOrder, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.drafts[id]
	if !ok {
		return FakeDraftOrder{}, false
	}
	return *d, true
}

func (f *FakePlatform) DraftCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.drafts)
}

func (f *FakePlatform) CancelledWith(subscription string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.cancelled[subscription]
	return s, ok
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

func (f *FakePlatform) serve(w http.ResponseWriter, r *http.Request) {
	var req gqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	data := f.dispatch(req)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func (f *FakePlatform) dispatch(req gqlRequest) map[string]any {
	str := func(k string) string { s, _ := req.Variables[k].(string); return s }

	switch {
	case strings.Contains(req.Query, "query Subscription("):
		return map[string]any{"subscription": f.subscription(str("id"))}
	case strings.Contains(req.Query, "mutation CancelSubscription("):
		sub := str("subscriptionId")
		if f.failCancel {
			return map[string]any{"cancelSubscription": map[string]any{"success": false, "userErrors": []any{}}}
		}
		f.cancelled[sub] = str("cancelSessionId")
		return map[string]any{"cancelSubscription": map[string]any{"success": true, "userErrors": []any{}}}
	case strings.Contains(req.Query, "query OrderLineItems("):
		return map[string]any{"order": f.order(str("id"))}
	case strings.Contains(req.Query, "query LinkedOneTimeProducts("):
		return map[string]any{"products": map[string]any{"nodes": f.linkedProducts(str("query"))}}
	case strings.Contains(req.Query, "mutation DraftOrderCreate("):
		return map[string]any{"draftOrderCreate": f.createDraft(req.Variables["input"])}
	case strings.Contains(req.Query, "mutation DraftOrderInvoiceSend("):
		id := str("id")
		d, ok := f.drafts[id]
		if !ok {
			return map[string]any{"draftOrderInvoiceSend": userErrors("Draft order not found")}
		}
		d.Invoices++
		return map[string]any{"draftOrderInvoiceSend": map[string]any{
			"draftOrder": map[string]any{"id": d.ID, "status": d.Status}, "userErrors": []any{},
		}}
	case strings.Contains(req.Query, "query DraftOrderStatus("):
		d, ok := f.drafts[str("id")]
		if !ok {
			return map[string]any{"draftOrder": nil}
		}
		return map[string]any{"draftOrder": map[string]any{"id": d.ID, "status": d.Status}}
	case strings.Contains(req.Query, "mutation DraftOrderDelete("):
		input, _ := req.Variables["input"].(map[string]any)
		id, _ := input["id"].(string)
		if _, ok := f.drafts[id]; !ok {
			return map[string]any{"draftOrderDelete": userErrors("Draft order does not exist")}
		}
		delete(f.drafts, id)
		return map[string]any{"draftOrderDelete": map[string]any{"deletedId": id, "userErrors": []any{}}}
	}
	return nil
}

func userErrors(msg string) map[string]any {
	return map[string]any{"userErrors": []any{map[string]any{"field": []string{"id"}, "message": msg}}}
}

func (f *FakePlatform) subscription(id string) any {
	s, ok := f.subscriptions[id]
	if !ok {
		return nil
	}
	return map[string]any{
		"id":                     s.ID,
		"billingCyclesCompleted": s.CyclesCompleted,
		"originOrderId":          FakeOrderID,
		"customer":               map[string]any{"email": s.Email},
		"shippingAddress": map[string]any{
			"firstName": "Jane", "lastName": "Doe", "address1": "1 Main St", "city": "Springfield",
			"province": s.Province, "provinceCode": s.ProvinceCode, "zip": "00000",
			"country": "United States", "countryCode": "US",
		},
		"lines": []any{
			map[string]any{"productVariantId": "101", "quantity": 2, "unitPrice": "18.00", "priceWithoutDiscount": "18.00", "sellingPlanId": "sp-1"},
			map[string]any{"productVariantId": "201", "quantity": 1, "unitPrice": "10.00", "priceWithoutDiscount": "12.50", "sellingPlanId": nil},
		},
	}
}

func (f *FakePlatform) order(id string) any {
	if id != FakeOrderID {
		return nil
	}
	return map[string]any{
		"id": FakeOrderID,
		"lineItems": map[string]any{"nodes": []any{
			map[string]any{
				"quantity": 2,
				"variant":  map[string]any{"id": FakeCoffeeVariant, "title": "Whole Bean / 12oz"},
				"product":  map[string]any{"id": FakeCoffeeProduct, "productType": "Coffee"},
			},
			map[string]any{
				"quantity": 1,
				"variant":  map[string]any{"id": FakeMugVariant, "title": "Default Title"},
				"product":  map[string]any{"id": FakeMugProduct, "productType": "Upsell"},
			},
			map[string]any{
				"quantity": 1,
				"variant":  map[string]any{"id": "gid://shopify/ProductVariant/301", "title": "Default Title"},
				"product":  map[string]any{"id": "gid://shopify/Product/3", "productType": "Free Gift"},
			},
		}},
	}
}

func (f *FakePlatform) linkedProducts(query string) []any {
	if !strings.Contains(query, FakeCoffeeProduct) {
		return []any{}
	}
	return []any{map[string]any{
		"id": "gid://shopify/Product/11",
		"variants": map[string]any{"nodes": []any{
			map[string]any{"id": "gid://shopify/ProductVariant/1101", "title": "Whole Bean / 12oz", "price": "25.00"},
			map[string]any{"id": "gid://shopify/ProductVariant/1102", "title": "Ground / 12oz", "price": "24.00"},
		}},
	}}
}

func (f *FakePlatform) createDraft(raw any) map[string]any {
	input, _ := raw.(map[string]any)
	email, _ := input["email"].(string)
	quantity := 0
	if lines, ok := input["lineItems"].([]any); ok && len(lines) == 1 {
		line, _ := lines[0].(map[string]any)
		if v, _ := line["variantId"].(string); v != FakeCompensationID {
			return userErrors("Variant is not the compensation product")
		}
		q, _ := line["quantity"].(float64)
		quantity = int(q)
	}

	f.nextDraft++
	id := fmt.Sprintf("gid://shopify/DraftOrder/%d", f.nextDraft)
	f.drafts[id] = &FakeDraftOrder{ID: id, Status: "OPEN", Quantity: quantity, Email: email}
	return map[string]any{"draftOrder": map[string]any{"id": id}, "userErrors": []any{}}
}
