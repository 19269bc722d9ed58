package domain_test

import (
	"testing"

	"github.com/dianadimla/walo_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPod_PercentRemaining(t *testing.T) {
	tests := []struct {
		name string
		pod  domain.Pod
		want int
	}{
		{
			name: "full pod",
			pod: domain.Pod{
				Balance:         decimal.NewFromInt(100),
				StartingBalance: decimal.NewFromInt(100),
			},
			want: 100,
		},
		{
			name: "partially spent pod",
			pod: domain.Pod{
				Balance:         decimal.NewFromInt(70),
				StartingBalance: decimal.NewFromInt(100),
			},
			want: 70,
		},
		{
			name: "never funded pod reports zero",
			pod: domain.Pod{
				Balance:         decimal.Zero,
				StartingBalance: decimal.Zero,
			},
			want: 0,
		},
		{
			name: "fully drained pod",
			pod: domain.Pod{
				Balance:         decimal.Zero,
				StartingBalance: decimal.NewFromInt(50),
			},
			want: 0,
		},
		{
			name: "fractional remainder truncates",
			pod: domain.Pod{
				Balance:         decimal.NewFromInt(1),
				StartingBalance: decimal.NewFromInt(3),
			},
			want: 33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pod.PercentRemaining())
		})
	}
}

func TestTransaction_SignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(12.50)

	expense := domain.Transaction{Amount: amount, Direction: domain.Expense}
	assert.True(t, expense.SignedAmount().Equal(amount.Neg()))

	income := domain.Transaction{Amount: amount, Direction: domain.Income}
	assert.True(t, income.SignedAmount().Equal(amount))
}
