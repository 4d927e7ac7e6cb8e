package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutForm_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		form := NewCheckoutForm()
		form.Email = "taro@example.com"
		form.Name = "Taro"
		assert.NoError(t, form.Validate())
	})

	t.Run("Required fields", func(t *testing.T) {
		err := NewCheckoutForm().Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "メールアドレスを入力してください")
		assert.Contains(t, err.Error(), "氏名を入力してください")
	})

	t.Run("Malformed email", func(t *testing.T) {
		form := CheckoutForm{Email: "not-an-email", Name: "Taro", PaymentMethod: PaymentBankTransfer}
		err := form.Validate()
		require.Error(t, err)
		assert.Equal(t, "メールアドレスの形式が正しくありません", err.Error())
	})

	t.Run("Unknown payment label", func(t *testing.T) {
		form := CheckoutForm{Email: "taro@example.com", Name: "Taro", PaymentMethod: "bitcoin"}
		assert.EqualError(t, form.Validate(), "支払い方法の形式が正しくありません")
	})
}

func TestParsePaymentMethod(t *testing.T) {
	for in, want := range map[string]string{
		"card":              PaymentCreditCard,
		"BANK":              PaymentBankTransfer,
		PaymentBankTransfer: PaymentBankTransfer,
	} {
		got, err := ParsePaymentMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParsePaymentMethod("cash")
	assert.Error(t, err)
}
