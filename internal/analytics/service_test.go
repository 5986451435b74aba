package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/shopsight/internal/analytics"
	"github.com/MrJamesThe3rd/shopsight/internal/record"
)

func newTestService(t *testing.T) (*analytics.Service, *record.MockStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := record.NewMockStore(ctrl)
	svc := analytics.NewService(record.NewService(store), analytics.NewEngine(analytics.DefaultThresholds()))

	return svc, store
}

func TestService_Metrics_NoData(t *testing.T) {
	svc, store := newTestService(t)

	store.EXPECT().GetSales(gomock.Any(), "asha").Return(nil, nil)
	store.EXPECT().GetInventory(gomock.Any(), "asha").Return(nil, nil)
	store.EXPECT().GetOrders(gomock.Any(), "asha").Return(nil, nil)
	store.EXPECT().GetDebts(gomock.Any(), "asha").Return(nil, nil)

	m, err := svc.Metrics(context.Background(), "asha")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestService_Metrics_StoreError(t *testing.T) {
	svc, store := newTestService(t)

	store.EXPECT().GetSales(gomock.Any(), "asha").Return(nil, errors.New("read failed"))

	_, err := svc.Metrics(context.Background(), "asha")
	assert.Error(t, err)
}

func TestService_Insights(t *testing.T) {
	svc, store := newTestService(t)

	sales := []record.Sale{sale("Rice 5kg", 2, 120, 80)}

	store.EXPECT().GetSales(gomock.Any(), "asha").Return(sales, nil)
	store.EXPECT().GetInventory(gomock.Any(), "asha").Return(nil, nil)
	store.EXPECT().GetOrders(gomock.Any(), "asha").Return(nil, nil)
	store.EXPECT().GetDebts(gomock.Any(), "asha").Return(nil, nil)

	insights, err := svc.Insights(context.Background(), "asha")
	require.NoError(t, err)
	require.NotEmpty(t, insights)
	assert.Equal(t, "Top Performer", insights[0].Title)
}

func TestService_Projection(t *testing.T) {
	svc, store := newTestService(t)

	var sales []record.Sale
	for i := 0; i < 7; i++ {
		sales = append(sales, saleAmount(10))
	}

	store.EXPECT().GetSales(gomock.Any(), "asha").Return(sales, nil)

	got, err := svc.Projection(context.Background(), "asha")
	require.NoError(t, err)
	assert.Equal(t, "300", got.String())
}

func TestService_Daily(t *testing.T) {
	svc, store := newTestService(t)

	s := saleAmount(40)
	s.Date = record.Today()

	store.EXPECT().GetSales(gomock.Any(), "asha").Return([]record.Sale{s}, nil)

	stats, err := svc.Daily(context.Background(), "asha", analytics.PeriodWeek)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.True(t, stats[0].Revenue.Equal(s.TotalAmount))
}
