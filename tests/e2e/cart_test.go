package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"
)

type Template struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Price        string `json:"price"`
	ThumbnailURL string `json:"thumbnail_url"`
	Status       string `json:"status"`
}

type CartItem struct {
	ID         int64  `json:"id"`
	TemplateID string `json:"template_id"`
	Title      string `json:"title"`
	Price      string `json:"price"`
	Quantity   int64  `json:"quantity"`
}

type CartSummary struct {
	TotalItems int64  `json:"totalItems"`
	TotalPrice string `json:"totalPrice"`
	ItemCount  int    `json:"itemCount"`
}

type CartResponse struct {
	Cart    []CartItem  `json:"cart"`
	Summary CartSummary `json:"summary"`
}

type CartItemResponse struct {
	Message  string   `json:"message"`
	CartItem CartItem `json:"cartItem"`
}

type ClearCartResponse struct {
	Message      string `json:"message"`
	DeletedItems int64  `json:"deletedItems"`
}

type AddCartRequest struct {
	TemplateID string `json:"templateId"`
	Quantity   int64  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type TemplateCreateRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Price        string `json:"price"`
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl"`
	Status       string `json:"status"`
}

type CheckoutResponse struct {
	Items      []json.RawMessage `json:"items"`
	TotalItems int64             `json:"totalItems"`
	TotalPrice string            `json:"totalPrice"`
	Totals     struct {
		Subtotal string `json:"subtotal"`
		Discount string `json:"discount"`
		Taxes    string `json:"taxes"`
		Total    string `json:"total"`
	} `json:"totals"`
	Note string `json:"note"`
}

func mustDecodeCart(t *testing.T, body []byte) CartResponse {
	t.Helper()
	var v CartResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(CartResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeCartItem(t *testing.T, body []byte) CartItemResponse {
	t.Helper()
	var v CartItemResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(CartItemResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

// カート用の公開テンプレートをadminで作ってIDを返す
func createActiveTemplate(t *testing.T, c *TestClient, ctx context.Context, access string, price string) string {
	t.Helper()

	uniqueTitle := "E2E-Template-" + time.Now().Format("20060102-150405.000000000")
	create := TemplateCreateRequest{
		Title:        uniqueTitle,
		Description:  "e2e template for cart tests",
		Price:        price,
		ImageURL:     "https://cdn.example.com/e2e.png",
		ThumbnailURL: "https://cdn.example.com/e2e_thumb.png",
		Status:       "ACTIVE",
	}
	createJSON, err := json.Marshal(create)
	if err != nil {
		t.Fatalf("json.Marshal(TemplateCreateRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/admin/templates", access, createJSON)
	requireStatus(t, resp, http.StatusCreated, body)

	var created Template
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("json.Unmarshal(Template) failed: %v body=%s", err, string(body))
	}
	if created.ID == "" {
		t.Fatalf("created template has no id: body=%s", string(body))
	}
	return created.ID
}

func Test_Cart_Add_MergeDuplicate_Update_Remove(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := adminLogin(t, c, ctx)
	clearCart(t, c, ctx, access)

	templateID := createActiveTemplate(t, c, ctx, access, "25.00")

	//GET /cart 初回は空であるか
	resp, body := c.doJSON(ctx, t, http.MethodGet, "/cart", access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	cart := mustDecodeCart(t, body)
	if len(cart.Cart) != 0 || cart.Summary.TotalItems != 0 {
		t.Fatalf("cart should be empty: body=%s", string(body))
	}

	//POST /cart/add qty=2 は201（新規行）
	add1JSON, _ := json.Marshal(AddCartRequest{TemplateID: templateID, Quantity: 2})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/cart/add", access, add1JSON)
	requireStatus(t, resp, http.StatusCreated, body)

	item := mustDecodeCartItem(t, body)
	if item.CartItem.Quantity != 2 {
		t.Fatalf("quantity should be 2: body=%s", string(body))
	}

	//同じテンプレートをもう一度addすると200で数量が合算されるか
	add2JSON, _ := json.Marshal(AddCartRequest{TemplateID: templateID, Quantity: 3})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/cart/add", access, add2JSON)
	requireStatus(t, resp, http.StatusOK, body)

	item = mustDecodeCartItem(t, body)
	if item.CartItem.Quantity != 5 {
		t.Fatalf("quantity should be 5 after duplicate add: body=%s", string(body))
	}

	//カートは1行のまま
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/cart", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
	cart = mustDecodeCart(t, body)
	if len(cart.Cart) != 1 || cart.Summary.TotalItems != 5 {
		t.Fatalf("cart should have 1 line with 5 items: body=%s", string(body))
	}

	//PUT /cart/update は数量の置き換え
	patchJSON, _ := json.Marshal(UpdateCartItemRequest{Quantity: 1})
	resp, body = c.doJSON(ctx, t, http.MethodPut, "/cart/update/"+templateID, access, patchJSON)
	requireStatus(t, resp, http.StatusOK, body)

	item = mustDecodeCartItem(t, body)
	if item.CartItem.Quantity != 1 {
		t.Fatalf("quantity should be replaced with 1: body=%s", string(body))
	}

	//DELETE /cart/remove で行が消えるか
	resp, body = c.doJSON(ctx, t, http.MethodDelete, "/cart/remove/"+templateID, access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	resp, body = c.doJSON(ctx, t, http.MethodGet, "/cart", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
	cart = mustDecodeCart(t, body)
	if len(cart.Cart) != 0 {
		t.Fatalf("cart should be empty after remove: body=%s", string(body))
	}
}

func Test_Cart_QuantityCeiling(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := adminLogin(t, c, ctx)
	clearCart(t, c, ctx, access)

	templateID := createActiveTemplate(t, c, ctx, access, "10.00")

	//上限いっぱいまでは入る
	addJSON, _ := json.Marshal(AddCartRequest{TemplateID: templateID, Quantity: 98})
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/cart/add", access, addJSON)
	requireStatus(t, resp, http.StatusCreated, body)

	//98+3=101は超過なので丸めずに拒否
	overJSON, _ := json.Marshal(AddCartRequest{TemplateID: templateID, Quantity: 3})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/cart/add", access, overJSON)
	requireStatus(t, resp, http.StatusBadRequest, body)

	errResp := mustDecodeError(t, body)
	if !strings.Contains(errResp.Error, "maximum 100") {
		t.Fatalf("error should mention the ceiling: body=%s", string(body))
	}

	//拒否後も既存数量は98のまま
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/cart", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
	cart := mustDecodeCart(t, body)
	if len(cart.Cart) != 1 || cart.Cart[0].Quantity != 98 {
		t.Fatalf("existing quantity should be untouched: body=%s", string(body))
	}

	clearCart(t, c, ctx, access)
}

func Test_Cart_Checkout_EmptyAndSuccess(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := adminLogin(t, c, ctx)
	clearCart(t, c, ctx, access)

	//空カートのcheckoutは400
	resp, body := c.doJSON(ctx, t, http.MethodPost, "/cart/checkout", access, nil)
	requireStatus(t, resp, http.StatusBadRequest, body)

	errResp := mustDecodeError(t, body)
	if !strings.Contains(errResp.Error, "cart is empty") {
		t.Fatalf("error should mention empty cart: body=%s", string(body))
	}

	//50×3=150でcheckout。割引10、税15、合計155
	templateID := createActiveTemplate(t, c, ctx, access, "50.00")
	addJSON, _ := json.Marshal(AddCartRequest{TemplateID: templateID, Quantity: 3})
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/cart/add", access, addJSON)
	requireStatus(t, resp, http.StatusCreated, body)

	resp, body = c.doJSON(ctx, t, http.MethodPost, "/cart/checkout", access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var checkout CheckoutResponse
	if err := json.Unmarshal(body, &checkout); err != nil {
		t.Fatalf("json.Unmarshal(CheckoutResponse) failed: %v body=%s", err, string(body))
	}
	if checkout.TotalItems != 3 {
		t.Fatalf("totalItems should be 3: body=%s", string(body))
	}
	if checkout.Totals.Discount != "10" || checkout.Totals.Total != "155" {
		t.Fatalf("unexpected totals: body=%s", string(body))
	}

	//checkoutはカートをクリアしない
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/cart", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
	cart := mustDecodeCart(t, body)
	if len(cart.Cart) != 1 {
		t.Fatalf("cart should survive checkout: body=%s", string(body))
	}

	clearCart(t, c, ctx, access)
}

func Test_Cart_RequiresAuth(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/cart", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}
