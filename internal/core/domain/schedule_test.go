package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/property_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildMonthlyRentSchedule_FullYear(t *testing.T) {
	terms := domain.ContractTerms{
		ContractID:  "contract-1",
		TenantID:    "tenant-1",
		ApartmentID: "apt-1",
		StartDate:   date(2025, time.January, 1),
		EndDate:     date(2025, time.December, 31),
		RentAmount:  decimal.NewFromInt(2500),
	}

	rows, err := domain.BuildMonthlyRentSchedule(terms, domain.DefaultRentDueDay)
	require.NoError(t, err)
	require.Len(t, rows, 12)

	for i, row := range rows {
		assert.Equal(t, date(2025, time.Month(i+1), 5), row.DueDate)
		assert.Equal(t, domain.SchedulePending, row.Status)
		assert.Equal(t, domain.ScheduleMonthlyRent, row.PaymentType)
		assert.True(t, decimal.NewFromInt(2500).Equal(row.Amount))
		assert.Equal(t, "contract-1", row.ContractID)
		assert.Nil(t, row.TransactionID)
	}
}

func TestBuildMonthlyRentSchedule_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  []time.Time
	}{
		{
			name:  "end before due day drops last month",
			start: date(2025, time.January, 1),
			end:   date(2025, time.March, 3),
			want:  []time.Time{date(2025, time.January, 5), date(2025, time.February, 5)},
		},
		{
			name:  "end on due day keeps last month",
			start: date(2025, time.January, 1),
			end:   date(2025, time.March, 5),
			want:  []time.Time{date(2025, time.January, 5), date(2025, time.February, 5), date(2025, time.March, 5)},
		},
		{
			name:  "start after due day drops first month",
			start: date(2025, time.January, 20),
			end:   date(2025, time.March, 31),
			want:  []time.Time{date(2025, time.February, 5), date(2025, time.March, 5)},
		},
		{
			name:  "crosses year boundary",
			start: date(2025, time.November, 1),
			end:   date(2026, time.February, 28),
			want: []time.Time{
				date(2025, time.November, 5), date(2025, time.December, 5),
				date(2026, time.January, 5), date(2026, time.February, 5),
			},
		},
		{
			name:  "single day before due day yields nothing",
			start: date(2025, time.June, 1),
			end:   date(2025, time.June, 2),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, err := domain.BuildMonthlyRentSchedule(domain.ContractTerms{
				StartDate:  tt.start,
				EndDate:    tt.end,
				RentAmount: decimal.NewFromInt(100),
			}, domain.DefaultRentDueDay)
			require.NoError(t, err)

			var got []time.Time
			for _, r := range rows {
				got = append(got, r.DueDate)
				assert.False(t, r.DueDate.Before(tt.start))
				assert.False(t, r.DueDate.After(tt.end))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildMonthlyRentSchedule_Invalid(t *testing.T) {
	base := domain.ContractTerms{
		StartDate:  date(2025, time.January, 1),
		EndDate:    date(2025, time.December, 31),
		RentAmount: decimal.NewFromInt(100),
	}

	noRent := base
	noRent.RentAmount = decimal.Zero
	_, err := domain.BuildMonthlyRentSchedule(noRent, 5)
	assert.Error(t, err)

	reversed := base
	reversed.StartDate, reversed.EndDate = base.EndDate, base.StartDate
	_, err = domain.BuildMonthlyRentSchedule(reversed, 5)
	assert.Error(t, err)

	noEnd := base
	noEnd.EndDate = time.Time{}
	_, err = domain.BuildMonthlyRentSchedule(noEnd, 5)
	assert.Error(t, err)

	_, err = domain.BuildMonthlyRentSchedule(base, 31)
	assert.Error(t, err)
}

func TestBuildSecurityDepositSchedule(t *testing.T) {
	start := date(2025, time.January, 1)
	zero := decimal.Zero
	negative := decimal.NewFromInt(-10)
	fee := decimal.NewFromInt(3000)

	assert.Nil(t, domain.BuildSecurityDepositSchedule(domain.ContractTerms{StartDate: start}))
	assert.Nil(t, domain.BuildSecurityDepositSchedule(domain.ContractTerms{StartDate: start, SecurityFee: &zero}))
	assert.Nil(t, domain.BuildSecurityDepositSchedule(domain.ContractTerms{StartDate: start, SecurityFee: &negative}))

	row := domain.BuildSecurityDepositSchedule(domain.ContractTerms{ContractID: "c", StartDate: start, SecurityFee: &fee})
	require.NotNil(t, row)
	assert.Equal(t, start, row.DueDate)
	assert.Equal(t, domain.SchedulePending, row.Status)
	assert.Equal(t, domain.ScheduleSecurityDeposit, row.PaymentType)
	assert.True(t, fee.Equal(row.Amount))
}
