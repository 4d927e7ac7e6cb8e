package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	PaymentCreditCard   = "クレジットカード"
	PaymentBankTransfer = "銀行振込"
)

// PaymentMethods are display labels only; no payment is processed.
var PaymentMethods = []string{PaymentCreditCard, PaymentBankTransfer}

type CheckoutForm struct {
	Email         string `validate:"required,email"`
	Name          string `validate:"required"`
	PaymentMethod string `validate:"required,oneof=クレジットカード 銀行振込"`
}

func NewCheckoutForm() CheckoutForm {
	return CheckoutForm{PaymentMethod: PaymentCreditCard}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

var fieldLabels = map[string]string{
	"Email":         "メールアドレス",
	"Name":          "氏名",
	"PaymentMethod": "支払い方法",
}

// Validate returns a user-facing message per failing field.
func (f CheckoutForm) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label := fieldLabels[fe.Field()]
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%sを入力してください", label))
		default:
			msgs = append(msgs, fmt.Sprintf("%sの形式が正しくありません", label))
		}
	}
	return errors.New(strings.Join(msgs, "\n"))
}

// ParsePaymentMethod accepts "card", "bank" or either display label.
func ParsePaymentMethod(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card", "credit", strings.ToLower(PaymentCreditCard):
		return PaymentCreditCard, nil
	case "bank", "transfer", PaymentBankTransfer:
		return PaymentBankTransfer, nil
	}
	return "", fmt.Errorf("unknown payment method %q (card|bank)", s)
}
