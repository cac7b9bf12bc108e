package public

import (
	"errors"

	"github.com/parskala/internal/http/response"
	"github.com/parskala/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	msg    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var cartCommonErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, msg: "购物车项无效"},
	{target: service.ErrProductNotAvailable, code: response.CodeBadRequest, msg: "商品不存在或已下架"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "商品库存不足"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCheckoutInvalid, code: response.CodeBadRequest, msg: "结算请求无效"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "购物车为空"},
	{target: service.ErrDuplicateSubmission, code: response.CodeBadRequest, msg: "订单已提交，请勿重复提交"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "商品库存不足"},
}

var userOrderErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "订单不存在"},
	{target: service.ErrOrderCancelNotAllowed, code: response.CodeBadRequest, msg: "当前状态下订单不可取消"},
}

var userTicketErrorRules = []mappedHandlerError{
	{target: service.ErrTicketNotFound, code: response.CodeNotFound, msg: "工单不存在"},
	{target: service.ErrTicketClosed, code: response.CodeBadRequest, msg: "工单已结束，无法回复"},
	{target: service.ErrTicketMessageEmpty, code: response.CodeBadRequest, msg: "工单内容不能为空"},
	{target: service.ErrTicketSubjectInvalid, code: response.CodeBadRequest, msg: "工单标题不能为空且不超过 200 字"},
	{target: service.ErrTicketStatusInvalid, code: response.CodeBadRequest, msg: "工单状态流转不合法"},
	{target: service.ErrOrderNotFound, code: response.CodeBadRequest, msg: "关联订单不存在"},
}

func respondUserCheckoutError(c *gin.Context, err error) {
	var validationErr *service.CheckoutValidationError
	if errors.As(err, &validationErr) {
		response.ErrorWithData(c, response.CodeBadRequest, "结算表单校验失败", gin.H{"fields": validationErr.Fields})
		return
	}
	rules := concatMappedHandlerErrors(checkoutErrorRules, cartCommonErrorRules)
	respondWithMappedError(c, err, rules, response.CodeInternal, "提交订单失败")
}
