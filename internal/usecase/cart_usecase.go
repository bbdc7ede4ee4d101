package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"market/internal/domain/model"
	repo "market/internal/repository"

	"github.com/shopspring/decimal"
)

// 1明細あたりの数量上限
const MaxQuantityPerTemplate int64 = 100

// usecaseがValidatorに依存する約束
type CartValidator interface {
	ValidateAdd(templateID string, quantity int64) error
	ValidateUpdate(templateID string, quantity int64) error
	ValidateTemplateID(templateID string) error
}

// CartUsecase は /cart の業務ロジック。
// 価格はスナップショットせず、毎回Templateの現在値を読む（仕様確認待ちのプロダクト判断）。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	templateRepo repo.TemplateRepository
	validator    CartValidator
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	templateRepo repo.TemplateRepository,
	validator CartValidator,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		templateRepo: templateRepo,
		validator:    validator,
	}
}

// カート明細のAPI返却形。priceは現在のカタログ価格。
type CartItemView struct {
	ID           int64           `json:"id"`
	TemplateID   string          `json:"template_id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	ThumbnailURL string          `json:"thumbnail_url"`
	Status       string          `json:"status"`
	Quantity     int64           `json:"quantity"`
	CreatedAt    time.Time       `json:"created_at"`
}

type CartView struct {
	Cart    []CartItemView `json:"cart"`
	Summary CartSummary    `json:"summary"`
}

type AddCartInput struct {
	TemplateID string
	Quantity   int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

type CheckoutItem struct {
	TemplateID string          `json:"templateId"`
	Title      string          `json:"title"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type CheckoutOutput struct {
	Items      []CheckoutItem  `json:"items"`
	TotalItems int64           `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Totals     CheckoutTotals  `json:"totals"`
	Note       string          `json:"note"`
}

// GetCart はカート取得。空でもエラーにしない（空のsnapshotを返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartView, error) {
	if userID <= 0 {
		return CartView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return CartView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	views := make([]CartItemView, 0, len(items))
	for _, it := range items {
		views = append(views, toCartItemView(it))
	}

	return CartView{
		Cart:    views,
		Summary: Summarize(views),
	}, nil
}

// AddToCart はカートに追加。同じテンプレートは数量加算で1行に畳む。
// 上限を超える加算は丸めずに拒否する（既存数量はそのまま）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartItemView, bool, error) {
	if userID <= 0 {
		return CartItemView{}, false, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validator.ValidateAdd(in.TemplateID, in.Quantity); err != nil {
		return CartItemView{}, false, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// テンプレートチェック（存在＋公開中）
	t, err := u.templateRepo.FindByID(ctx, in.TemplateID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemView{}, false, NewHTTPError(http.StatusNotFound, "template not found")
	}
	if err != nil {
		return CartItemView{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if t.Status != model.TemplateStatusActive {
		return CartItemView{}, false, NewHTTPError(http.StatusBadRequest, "template is not available")
	}

	existing, err := u.cartRepo.FindByUserAndTemplate(ctx, userID, in.TemplateID)
	if err == nil {
		view, mergeErr := u.mergeQuantity(ctx, userID, t, existing.Quantity, in.Quantity)
		return view, false, mergeErr
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return CartItemView{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 新規作成
	item := model.CartItem{
		UserID:     userID,
		TemplateID: in.TemplateID,
		Quantity:   in.Quantity,
	}

	err = u.cartRepo.Create(ctx, &item)
	if errors.Is(err, repo.ErrConflict) {
		// 同じペアの新規addが同時に走ると片方はunique制約に負ける。
		// 負けた側は加算updateとして1回だけやり直す。
		existing, err := u.cartRepo.FindByUserAndTemplate(ctx, userID, in.TemplateID)
		if err != nil {
			return CartItemView{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		view, mergeErr := u.mergeQuantity(ctx, userID, t, existing.Quantity, in.Quantity)
		return view, false, mergeErr
	}
	if err != nil {
		return CartItemView{}, false, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item.Template = t
	return toCartItemView(item), true, nil
}

// 既存数量に加算して置き換える。上限チェック込み。
func (u *CartUsecase) mergeQuantity(ctx context.Context, userID int64, t model.Template, existingQty int64, addQty int64) (CartItemView, error) {
	newQty := existingQty + addQty
	if newQty > MaxQuantityPerTemplate {
		return CartItemView{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("cannot add %d items. maximum %d per template. current: %d", addQty, MaxQuantityPerTemplate, existingQty))
	}

	if err := u.cartRepo.UpdateQuantity(ctx, userID, t.ID, newQty); err != nil {
		return CartItemView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartRepo.FindByUserAndTemplate(ctx, userID, t.ID)
	if err != nil {
		return CartItemView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item.Template = t
	return toCartItemView(item), nil
}

// UpdateCartItem は数量の置き換え（加算ではない）。行が無ければ404。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID int64, templateID string, in UpdateCartItemInput) (CartItemView, error) {
	if userID <= 0 {
		return CartItemView{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validator.ValidateUpdate(templateID, in.Quantity); err != nil {
		return CartItemView{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := u.cartRepo.UpdateQuantity(ctx, userID, templateID, in.Quantity)
	if errors.Is(err, repo.ErrNotFound) {
		return CartItemView{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return CartItemView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartRepo.FindByUserAndTemplate(ctx, userID, templateID)
	if err != nil {
		return CartItemView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	t, err := u.templateRepo.FindByID(ctx, templateID)
	if err != nil {
		return CartItemView{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item.Template = t
	return toCartItemView(item), nil
}

// RemoveFromCart は明細を削除。無ければ404。
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID int64, templateID string) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := u.validator.ValidateTemplateID(templateID); err != nil {
		return NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := u.cartRepo.Delete(ctx, userID, templateID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// ClearCart は全明細を削除して件数を返す。0件でも成功。
func (u *CartUsecase) ClearCart(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	deleted, err := u.cartRepo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return deleted, nil
}

// Checkout は支払い前の検証ゲート。
// 全明細がまだ購入可能（ACTIVE）なことを確認してサマリーを返すだけで、
// 注文の保存・決済・カートのクリアはしない（未実装の外部境界）。
func (u *CartUsecase) Checkout(ctx context.Context, userID int64) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(items) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	// 公開が落ちたテンプレートが混ざっていたらtitle付きで拒否
	var inactive []string
	for _, it := range items {
		if it.Template.Status != model.TemplateStatusActive {
			inactive = append(inactive, it.Template.Title)
		}
	}
	if len(inactive) > 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest,
			"some items are no longer available: "+strings.Join(inactive, ", "))
	}

	out := CheckoutOutput{
		Items: make([]CheckoutItem, 0, len(items)),
		Note:  "payment processing and order creation to be implemented",
	}

	subtotal := decimal.Zero
	for _, it := range items {
		lineSubtotal := it.Template.Price.Mul(decimal.NewFromInt(it.Quantity))

		out.Items = append(out.Items, CheckoutItem{
			TemplateID: it.TemplateID,
			Title:      it.Template.Title,
			Quantity:   it.Quantity,
			UnitPrice:  it.Template.Price,
			Subtotal:   lineSubtotal,
		})

		out.TotalItems += it.Quantity
		subtotal = subtotal.Add(lineSubtotal)
	}

	out.TotalPrice = subtotal
	out.Totals = ComputeCheckoutTotals(subtotal)

	return out, nil
}

func toCartItemView(it model.CartItem) CartItemView {
	return CartItemView{
		ID:           it.ID,
		TemplateID:   it.TemplateID,
		Title:        it.Template.Title,
		Price:        it.Template.Price,
		ThumbnailURL: it.Template.ThumbnailURL,
		Status:       string(it.Template.Status),
		Quantity:     it.Quantity,
		CreatedAt:    it.CreatedAt,
	}
}
