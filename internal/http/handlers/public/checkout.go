package public

import (
	"github.com/parskala/internal/constants"
	"github.com/parskala/internal/http/response"
	"github.com/parskala/internal/service"

	"github.com/gin-gonic/gin"
)

// bindCheckoutForm 从 multipart/form-data 读取结算表单字段
func bindCheckoutForm(c *gin.Context) service.CheckoutForm {
	return service.CheckoutForm{
		FullName:         c.PostForm("full_name"),
		Email:            c.PostForm("email"),
		Phone:            c.PostForm("phone"),
		Address:          c.PostForm("address"),
		City:             c.PostForm("city"),
		PostalCode:       c.PostForm("postal_code"),
		PayerCardNumber:  c.PostForm("payer_card_number"),
		PaymentReference: c.PostForm("payment_reference"),
		Notes:            c.PostForm("notes"),
	}
}

// ValidateCheckout 结算第一阶段：仅校验表单与购物车，不产生副作用
func (h *Handler) ValidateCheckout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var form service.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}
	if err := h.OrderService.ValidateCheckout(uid, form); err != nil {
		respondUserCheckoutError(c, err)
		return
	}
	response.Success(c, gin.H{"valid": true})
}

// Checkout 提交结算：表单 + 转账凭证一并以 multipart 提交
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	form := bindCheckoutForm(c)

	// 先完成不产生副作用的校验，避免白白保存凭证文件
	if err := h.OrderService.ValidateCheckout(uid, form); err != nil {
		respondUserCheckoutError(c, err)
		return
	}

	// 转账凭证可选：未附带时直接下单，之后可由客服人工核对
	var receiptPath string
	if file, err := c.FormFile("receipt"); err == nil {
		receiptPath, err = h.UploadService.SaveFile(file, constants.UploadSceneReceipt)
		if err != nil {
			respondError(c, response.CodeBadRequest, err.Error(), nil)
			return
		}
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:      uid,
		Form:        form,
		ReceiptPath: receiptPath,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		// 下单失败时清理已保存的凭证文件
		if receiptPath != "" {
			if cleanupErr := h.UploadService.DeleteFile(receiptPath); cleanupErr != nil {
				requestLog(c).Warnw("checkout_receipt_cleanup_failed",
					"receipt_path", receiptPath,
					"error", cleanupErr,
				)
			}
		}
		respondUserCheckoutError(c, err)
		return
	}

	response.Success(c, order)
}
