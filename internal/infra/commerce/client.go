// Package commerce is the storefront Admin GraphQL adapter used to read orders and manage the
// draft orders that collect compensation.
package commerce

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cancel-saga/internal/domain/compensation"
	"cancel-saga/internal/infra"
	"cancel-saga/internal/infra/graphql"
	"cancel-saga/internal/pkg/searchquery"
	"cancel-saga/internal/pkg/storeconfig"
	"cancel-saga/internal/usecase/commands"

	"github.com/shopspring/decimal"
)

const platform = "commerce"

type StoreLookup interface {
	ByAlias(alias string) (storeconfig.Store, error)
}

type Client struct {
	stores  StoreLookup
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
	// endpointOverride replaces the per-store Admin API URL; set by tests.
	endpointOverride string
}

func NewClient(stores StoreLookup, httpClient *http.Client, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		stores:  stores,
		http:    httpClient,
		timeout: timeout,
		logger:  logger.With(slog.String("client", platform)),
	}
}

// WithEndpoint points every store at a single endpoint.
func (c *Client) WithEndpoint(endpoint string) *Client {
	cp := *c
	cp.endpointOverride = endpoint
	return &cp
}

type storeClient struct {
	gql      *graphql.Client
	settings storeconfig.CommerceSettings
}

func (c *Client) forStore(store string) (*storeClient, error) {
	s, err := c.stores.ByAlias(store)
	if err != nil {
		return nil, infra.NewUpstreamErr(platform, "resolve store", infra.KindUpstreamRejected, err)
	}
	endpoint := c.endpointOverride
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s/admin/api/%s/graphql.json", s.Commerce.Domain, s.Commerce.APIVersion)
	}
	headers := map[string]string{"X-Shopify-Access-Token": s.Commerce.AccessToken}
	return &storeClient{
		gql:      graphql.NewClient(platform, endpoint, headers, c.http, c.timeout),
		settings: s.Commerce,
	}, nil
}

// GID accepts either a bare numeric id or a full global id.
func GID(kind, id string) string {
	if strings.HasPrefix(id, "gid://") {
		return id
	}
	return "gid://shopify/" + kind + "/" + id
}

const orderLineItemsQuery = `
query OrderLineItems($id: ID!) {
  order(id: $id) {
    id
    lineItems(first: 250) {
      nodes {
        quantity
        variant { id title }
        product { id productType }
      }
    }
  }
}`

type orderLineItemsData struct {
	Order *struct {
		ID        string `json:"id"`
		LineItems struct {
			Nodes []struct {
				Quantity int `json:"quantity"`
				Variant  *struct {
					ID    string `json:"id"`
					Title string `json:"title"`
				} `json:"variant"`
				Product *struct {
					ID          string `json:"id"`
					ProductType string `json:"productType"`
				} `json:"product"`
			} `json:"nodes"`
		} `json:"lineItems"`
	} `json:"order"`
}

func (c *Client) GetOrderLineItems(ctx context.Context, store, orderID string) ([]compensation.OrderLineItem, error) {
	sc, err := c.forStore(store)
	if err != nil {
		return nil, err
	}

	var data orderLineItemsData
	if err := sc.gql.Do(ctx, "order", orderLineItemsQuery, map[string]any{"id": GID("Order", orderID)}, &data); err != nil {
		return nil, err
	}
	if data.Order == nil {
		return nil, infra.NewUpstreamErr(platform, "order", infra.KindUpstreamNotFound, fmt.Errorf("order %s", orderID))
	}

	items := make([]compensation.OrderLineItem, 0, len(data.Order.LineItems.Nodes))
	for _, n := range data.Order.LineItems.Nodes {
		// Custom line items have neither; they cannot be matched to a subscription line.
		if n.Variant == nil || n.Product == nil {
			c.logger.Debug("skipping line item without product", "store", store, "order", orderID)
			continue
		}
		items = append(items, compensation.OrderLineItem{
			ProductID:    n.Product.ID,
			ProductType:  n.Product.ProductType,
			VariantID:    n.Variant.ID,
			VariantTitle: n.Variant.Title,
			Quantity:     n.Quantity,
		})
	}
	return items, nil
}

const linkedProductsQuery = `
query LinkedOneTimeProducts($query: String!) {
  products(first: 5, query: $query) {
    nodes {
      id
      variants(first: 100) {
        nodes { id title price }
      }
    }
  }
}`

type linkedProductsData struct {
	Products struct {
		Nodes []struct {
			ID       string `json:"id"`
			Variants struct {
				Nodes []struct {
					ID    string          `json:"id"`
					Title string          `json:"title"`
					Price decimal.Decimal `json:"price"`
				} `json:"nodes"`
			} `json:"variants"`
		} `json:"nodes"`
	} `json:"products"`
}

// GetLinkedOneTimeVariants finds the one-time product whose link metafield references the
// subscription product. An empty result means no counterpart exists.
func (c *Client) GetLinkedOneTimeVariants(ctx context.Context, store, subscriptionProductID string) ([]compensation.OneTimeVariant, error) {
	sc, err := c.forStore(store)
	if err != nil {
		return nil, err
	}

	query, err := searchquery.New().
		Eq("metafields."+sc.settings.LinkField, GID("Product", subscriptionProductID)).
		Build()
	if err != nil {
		return nil, infra.NewUpstreamErr(platform, "products", infra.KindUpstreamRejected, err)
	}

	var data linkedProductsData
	if err := sc.gql.Do(ctx, "products", linkedProductsQuery, map[string]any{"query": query}, &data); err != nil {
		return nil, err
	}
	if len(data.Products.Nodes) == 0 {
		return nil, nil
	}
	if len(data.Products.Nodes) > 1 {
		c.logger.Warn("several one-time products link to the same subscription product, using the first",
			"store", store, "product", subscriptionProductID, "matches", len(data.Products.Nodes))
	}

	nodes := data.Products.Nodes[0].Variants.Nodes
	variants := make([]compensation.OneTimeVariant, 0, len(nodes))
	for _, v := range nodes {
		variants = append(variants, compensation.OneTimeVariant{ID: v.ID, Title: v.Title, Price: v.Price})
	}
	return variants, nil
}

const draftOrderCreateMutation = `
mutation DraftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder { id }
    userErrors { field message }
  }
}`

type draftOrderCreateData struct {
	DraftOrderCreate struct {
		DraftOrder *struct {
			ID string `json:"id"`
		} `json:"draftOrder"`
		UserErrors []graphql.UserError `json:"userErrors"`
	} `json:"draftOrderCreate"`
}

func (c *Client) CreateDraftOrder(ctx context.Context, store string, input commands.DraftOrderInput) (string, error) {
	sc, err := c.forStore(store)
	if err != nil {
		return "", err
	}

	vars := map[string]any{"input": draftOrderInput(input)}
	var data draftOrderCreateData
	if err := sc.gql.Do(ctx, "draftOrderCreate", draftOrderCreateMutation, vars, &data); err != nil {
		return "", err
	}
	if err := sc.gql.CheckUserErrors("draftOrderCreate", data.DraftOrderCreate.UserErrors); err != nil {
		return "", err
	}
	if data.DraftOrderCreate.DraftOrder == nil || data.DraftOrderCreate.DraftOrder.ID == "" {
		return "", infra.NewUpstreamErr(platform, "draftOrderCreate", infra.KindUpstreamUnavailable, fmt.Errorf("no draft order returned"))
	}
	return data.DraftOrderCreate.DraftOrder.ID, nil
}

func draftOrderInput(in commands.DraftOrderInput) map[string]any {
	a := in.ShippingAddress
	return map[string]any{
		"email": in.Email,
		"note":  in.Note,
		"tags":  in.Tags,
		"lineItems": []map[string]any{
			{"variantId": GID("ProductVariant", in.VariantID), "quantity": in.Quantity},
		},
		"shippingAddress": map[string]any{
			"firstName":    a.FirstName,
			"lastName":     a.LastName,
			"address1":     a.Address1,
			"address2":     a.Address2,
			"city":         a.City,
			"provinceCode": a.ProvinceCode,
			"zip":          a.Zip,
			"countryCode":  a.CountryCode,
			"phone":        a.Phone,
		},
	}
}

const draftOrderInvoiceSendMutation = `
mutation DraftOrderInvoiceSend($id: ID!) {
  draftOrderInvoiceSend(id: $id) {
    draftOrder { id status }
    userErrors { field message }
  }
}`

type draftOrderInvoiceSendData struct {
	DraftOrderInvoiceSend struct {
		UserErrors []graphql.UserError `json:"userErrors"`
	} `json:"draftOrderInvoiceSend"`
}

func (c *Client) SendInvoice(ctx context.Context, store, draftOrderID string) error {
	sc, err := c.forStore(store)
	if err != nil {
		return err
	}

	var data draftOrderInvoiceSendData
	vars := map[string]any{"id": GID("DraftOrder", draftOrderID)}
	if err := sc.gql.Do(ctx, "draftOrderInvoiceSend", draftOrderInvoiceSendMutation, vars, &data); err != nil {
		return err
	}
	return sc.gql.CheckUserErrors("draftOrderInvoiceSend", data.DraftOrderInvoiceSend.UserErrors)
}

const draftOrderStatusQuery = `
query DraftOrderStatus($id: ID!) {
  draftOrder(id: $id) { id status }
}`

type draftOrderStatusData struct {
	DraftOrder *struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	} `json:"draftOrder"`
}

func (c *Client) GetDraftOrderStatus(ctx context.Context, store, draftOrderID string) (commands.DraftOrderStatus, error) {
	sc, err := c.forStore(store)
	if err != nil {
		return "", err
	}

	var data draftOrderStatusData
	if err := sc.gql.Do(ctx, "draftOrder", draftOrderStatusQuery, map[string]any{"id": GID("DraftOrder", draftOrderID)}, &data); err != nil {
		return "", err
	}
	if data.DraftOrder == nil {
		return "", infra.NewUpstreamErr(platform, "draftOrder", infra.KindUpstreamNotFound, fmt.Errorf("draft order %s", draftOrderID))
	}
	return commands.DraftOrderStatus(strings.ToUpper(data.DraftOrder.Status)), nil
}

const draftOrderDeleteMutation = `
mutation DraftOrderDelete($input: DraftOrderDeleteInput!) {
  draftOrderDelete(input: $input) {
    deletedId
    userErrors { field message }
  }
}`

type draftOrderDeleteData struct {
	DraftOrderDelete struct {
		DeletedID  *string             `json:"deletedId"`
		UserErrors []graphql.UserError `json:"userErrors"`
	} `json:"draftOrderDelete"`
}

func (c *Client) DeleteDraftOrder(ctx context.Context, store, draftOrderID string) error {
	sc, err := c.forStore(store)
	if err != nil {
		return err
	}

	var data draftOrderDeleteData
	vars := map[string]any{"input": map[string]any{"id": GID("DraftOrder", draftOrderID)}}
	if err := sc.gql.Do(ctx, "draftOrderDelete", draftOrderDeleteMutation, vars, &data); err != nil {
		return err
	}
	return sc.gql.CheckUserErrors("draftOrderDelete", data.DraftOrderDelete.UserErrors)
}
