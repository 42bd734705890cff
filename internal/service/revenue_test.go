package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/directory/internal/errs"
	"github.com/deppfellow/directory/internal/lib/job"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

// memoryRevenueStore keeps revenue tables in memory, replacing them under
// a mutex the way the database does under its advisory lock.
type memoryRevenueStore struct {
	mu         sync.Mutex
	companies  map[uuid.UUID]*model.CompanyContact
	industries map[string]string
	// items[kind][industry][slug] = name
	items      map[model.TaxonomyKind]map[string]map[string]string
	tables     map[model.RevenueKey][]model.RevenueRowInput
	replaceErr error
	replaces   int
}

var (
	acmeID  = uuid.MustParse("6a1d6f0e-2b8c-4a55-8f7e-3c0b9d2e4a11")
	contact = "finance@acme.test"
)

func newMemoryRevenueStore() *memoryRevenueStore {
	taxonomy := func(pairs ...string) map[string]map[string]string {
		out := map[string]map[string]string{}
		for i := 0; i < len(pairs); i += 3 {
			if out[pairs[i]] == nil {
				out[pairs[i]] = map[string]string{}
			}
			out[pairs[i]][pairs[i+1]] = pairs[i+2]
		}
		return out
	}

	return &memoryRevenueStore{
		companies: map[uuid.UUID]*model.CompanyContact{
			acmeID: {Name: "Acme", Email: &contact},
		},
		industries: map[string]string{"saas": "SaaS", "retail": "Retail"},
		items: map[model.TaxonomyKind]map[string]map[string]string{
			model.KindSource: taxonomy(
				"saas", "subscriptions", "Subscriptions",
				"saas", "services", "Services",
				"retail", "stores", "Stores"),
			model.KindCategory: taxonomy(
				"saas", "b2b", "Business",
				"saas", "b2c", "Consumer",
				"retail", "grocery", "Grocery"),
			model.KindSegment: taxonomy(
				"saas", "smb", "SMB",
				"saas", "enterprise", "Enterprise"),
			model.KindChannel: taxonomy(
				"saas", "direct", "Direct",
				"saas", "partners", "Partners"),
		},
		tables: map[model.RevenueKey][]model.RevenueRowInput{},
	}
}

func (m *memoryRevenueStore) List(ctx context.Context, d query.Descriptor) ([]model.RevenueStream, int64, error) {
	return []model.RevenueStream{}, 0, nil
}

func (m *memoryRevenueStore) CompanyContact(ctx context.Context, id uuid.UUID) (*model.CompanyContact, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, noRows("companies")
}

func (m *memoryRevenueStore) IndustryName(ctx context.Context, slug string) (string, error) {
	if name, ok := m.industries[slug]; ok {
		return name, nil
	}
	return "", noRows("industry_types")
}

func (m *memoryRevenueStore) SourceName(ctx context.Context, industry, source string) (string, error) {
	if name, ok := m.items[model.KindSource][industry][source]; ok {
		return name, nil
	}
	return "", noRows("revenue_sources")
}

func (m *memoryRevenueStore) ExistingSlugs(ctx context.Context, kind model.TaxonomyKind, industry string, slugs []string) (map[string]bool, error) {
	found := map[string]bool{}
	for _, slug := range slugs {
		if _, ok := m.items[kind][industry][slug]; ok {
			found[slug] = true
		}
	}
	return found, nil
}

func (m *memoryRevenueStore) ReplaceTable(ctx context.Context, key model.RevenueKey, rows []model.RevenueRowInput) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.replaces++
	if m.replaceErr != nil {
		return 0, m.replaceErr
	}

	if len(rows) == 0 {
		delete(m.tables, key)
		return 0, nil
	}
	m.tables[key] = append([]model.RevenueRowInput(nil), rows...)
	return int64(len(rows)), nil
}

func (m *memoryRevenueStore) GetRows(ctx context.Context, key model.RevenueKey) ([]model.RevenueRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var rows []model.RevenueRow
	for i, in := range m.tables[key] {
		row := model.RevenueRow{
			ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprint(key, i))),
			CategorySlug: in.CategorySlug,
			CategoryName: m.items[model.KindCategory][key.IndustryTypeSlug][in.CategorySlug],
			SegmentSlug:  in.SegmentSlug,
			SegmentName:  m.items[model.KindSegment][key.IndustryTypeSlug][in.SegmentSlug],
			ChannelSlug:  in.ChannelSlug,
			ChannelName:  m.items[model.KindChannel][key.IndustryTypeSlug][in.ChannelSlug],
			Percent:      in.Percent,
			CtrPercent:   in.CtrPercent,
		}
		if in.Value != nil {
			row.Value = decimal.NewNullDecimal(*in.Value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *memoryRevenueStore) matching(companyID uuid.UUID, year int, industry string) []model.RevenueKey {
	var keys []model.RevenueKey
	for key := range m.tables {
		if key.CompanyID == companyID && key.Year == year && (industry == "" || key.IndustryTypeSlug == industry) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].IndustryTypeSlug+keys[i].SourceSlug < keys[j].IndustryTypeSlug+keys[j].SourceSlug
	})
	return keys
}

func (m *memoryRevenueStore) SourceSummaries(ctx context.Context, companyID uuid.UUID, year int, industry string) ([]model.SourceSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.SourceSummary
	for _, key := range m.matching(companyID, year, industry) {
		out = append(out, model.SourceSummary{
			IndustryTypeSlug: key.IndustryTypeSlug,
			SourceSlug:       key.SourceSlug,
			SourceName:       m.items[model.KindSource][key.IndustryTypeSlug][key.SourceSlug],
			RowCount:         int64(len(m.tables[key])),
		})
	}
	return out, nil
}

func (m *memoryRevenueStore) YearlyStats(ctx context.Context, companyID uuid.UUID, year int, industry string) ([]model.SourceStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.SourceStats
	for _, key := range m.matching(companyID, year, industry) {
		rows := m.tables[key]
		stats := model.SourceStats{
			IndustryTypeSlug: key.IndustryTypeSlug,
			SourceSlug:       key.SourceSlug,
			RowCount:         int64(len(rows)),
			SumValue:         decimal.Zero,
		}
		for _, row := range rows {
			stats.SumPercent += row.Percent
			stats.AvgCtrPercent += row.CtrPercent / float64(len(rows))
			if row.Value != nil {
				stats.SumValue = stats.SumValue.Add(*row.Value)
			}
		}
		stats.AvgPercent = stats.SumPercent / float64(len(rows))
		out = append(out, stats)
	}
	return out, nil
}

func (m *memoryRevenueStore) ClearTable(ctx context.Context, companyID uuid.UUID, year int, source string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for key, rows := range m.tables {
		if key.CompanyID == companyID && key.Year == year && key.SourceSlug == source {
			deleted += int64(len(rows))
			delete(m.tables, key)
		}
	}
	return deleted, nil
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) EnqueueWelcomeEmail(ctx context.Context, p job.WelcomeEmailPayload) error {
	return m.Called(ctx, p).Error(0)
}

func (m *mockNotifier) EnqueueRevenueTableUpdated(ctx context.Context, p job.RevenueTableUpdatedPayload) error {
	return m.Called(ctx, p).Error(0)
}

func quietNotifier() *mockNotifier {
	n := &mockNotifier{}
	n.On("EnqueueRevenueTableUpdated", mock.Anything, mock.Anything).Return(nil)
	return n
}

func upsertRequest(industry, source string, rows ...model.RevenueRowInput) *model.UpsertRevenueTableRequest {
	return &model.UpsertRevenueTableRequest{
		RevenueTableRequest: model.RevenueTableRequest{
			CompanyID:        acmeID,
			Year:             2024,
			IndustryTypeSlug: industry,
			SourceSlug:       source,
		},
		Rows: rows,
	}
}

func row(category, segment, channel string, percent float64) model.RevenueRowInput {
	return model.RevenueRowInput{CategorySlug: category, SegmentSlug: segment, ChannelSlug: channel, Percent: percent}
}

func combos(table *model.RevenueTable) []string {
	out := make([]string, 0, len(table.Rows))
	for _, r := range table.Rows {
		out = append(out, fmt.Sprintf("%s/%s/%s:%v", r.CategorySlug, r.SegmentSlug, r.ChannelSlug, r.Percent))
	}
	sort.Strings(out)
	return out
}

func TestUpsertTable_RoundTripReplacesPreviousRows(t *testing.T) {
	store := newMemoryRevenueStore()
	svc := NewRevenueService(store, quietNotifier())
	ctx := context.Background()

	_, err := svc.UpsertTable(ctx, upsertRequest("saas", "subscriptions",
		row("b2b", "smb", "direct", 30),
		row("b2b", "enterprise", "partners", 20),
		row("b2c", "smb", "direct", 50),
	))
	require.NoError(t, err)

	res, err := svc.UpsertTable(ctx, upsertRequest("saas", "subscriptions",
		row("b2c", "enterprise", "partners", 100),
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"b2c/enterprise/partners:100"}, combos(res.Data))

	read, err := svc.GetTable(ctx, &upsertRequest("saas", "subscriptions").RevenueTableRequest)
	require.NoError(t, err)
	assert.Equal(t, combos(res.Data), combos(read.Data))
	assert.Equal(t, "Consumer", read.Data.Rows[0].CategoryName)
	assert.Equal(t, "Subscriptions", read.Data.SourceName)
	assert.Equal(t, "SaaS", read.Data.IndustryTypeName)
	assert.Equal(t, "Acme", read.Data.CompanyName)
}

func TestUpsertTable_IsIdempotent(t *testing.T) {
	store := newMemoryRevenueStore()
	svc := NewRevenueService(store, quietNotifier())
	ctx := context.Background()

	req := upsertRequest("saas", "subscriptions",
		row("b2b", "smb", "direct", 40),
		row("b2c", "smb", "partners", 60),
	)

	first, err := svc.UpsertTable(ctx, req)
	require.NoError(t, err)
	second, err := svc.UpsertTable(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, combos(first.Data), combos(second.Data))
	assert.Equal(t, 2, second.Data.Totals.RowCount)
	assert.InDelta(t, 100, second.Data.Totals.Percent, 1e-9)
	require.Len(t, second.Data.Sources, 1)
	assert.Equal(t, int64(2), second.Data.Sources[0].RowCount)
}

func TestUpsertTable_SnapshotListsSourcesOfIndustry(t *testing.T) {
	store := newMemoryRevenueStore()
	svc := NewRevenueService(store, quietNotifier())
	ctx := context.Background()

	_, err := svc.UpsertTable(ctx, upsertRequest("saas", "services", row("b2b", "smb", "direct", 100)))
	require.NoError(t, err)

	res, err := svc.UpsertTable(ctx, upsertRequest("saas", "subscriptions",
		row("b2b", "smb", "direct", 70),
		row("b2c", "smb", "direct", 30),
	))
	require.NoError(t, err)

	require.Len(t, res.Data.Sources, 2)
	assert.Equal(t, "services", res.Data.Sources[0].SourceSlug)
	assert.Equal(t, int64(1), res.Data.Sources[0].RowCount)
	assert.Equal(t, "subscriptions", res.Data.Sources[1].SourceSlug)
	assert.Equal(t, int64(2), res.Data.Sources[1].RowCount)
}

func TestUpsertTable_CategoryFromOtherIndustryLeavesStoreUnchanged(t *testing.T) {
	store := newMemoryRevenueStore()
	svc := NewRevenueService(store, quietNotifier())
	ctx := context.Background()

	_, err := svc.UpsertTable(ctx, upsertRequest("saas", "subscriptions", row("b2b", "smb", "direct", 100)))
	require.NoError(t, err)
	replaces := store.replaces

	_, err = svc.UpsertTable(ctx, upsertRequest("saas", "subscriptions",
		row("b2c", "smb", "direct", 50),
		row("grocery", "smb", "direct", 50),
	))
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.CodeInvalidReference))
	assert.Contains(t, err.Error(), `"grocery"`)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "rows[1].categorySlug", httpErr.Errors[0].Field)

	assert.Equal(t, replaces, store.replaces)
	read, err := svc.GetTable(ctx, &upsertRequest("saas", "subscriptions").RevenueTableRequest)
	require.NoError(t, err)
	assert.Equal(t, []string{"b2b/smb/direct:100"}, combos(read.Data))
}

func TestUpsertTable_Rejections(t *testing.T) {
	tests := []struct {
		name string
		req  *model.UpsertRevenueTableRequest
		code string
	}{
		{
			name: "unknown company",
			req: func() *model.UpsertRevenueTableRequest {
				r := upsertRequest("saas", "subscriptions", row("b2b", "smb", "direct", 10))
				r.CompanyID = uuid.New()
				return r
			}(),
			code: errs.CodeNotFound,
		},
		{
			name: "unknown industry",
			req:  upsertRequest("energy", "subscriptions", row("b2b", "smb", "direct", 10)),
			code: errs.CodeInvalidReference,
		},
		{
			name: "source of another industry",
			req:  upsertRequest("saas", "stores", row("b2b", "smb", "direct", 10)),
			code: errs.CodeInvalidReference,
		},
		{
			name: "unknown channel",
			req:  upsertRequest("saas", "subscriptions", row("b2b", "smb", "fax", 10)),
			code: errs.CodeInvalidReference,
		},
		{
			name: "duplicated combination",
			req: upsertRequest("saas", "subscriptions",
				row("b2b", "smb", "direct", 10),
				row("b2b", "smb", "direct", 20),
			),
			code: errs.CodeConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryRevenueStore()
			notifier := &mockNotifier{}
			svc := NewRevenueService(store, notifier)

			_, err := svc.UpsertTable(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errs.IsCode(err, tt.code), "got %v", err)
			assert.Zero(t, store.replaces)
			notifier.AssertNotCalled(t, "EnqueueRevenueTableUpdated", mock.Anything, mock.Anything)
		})
	}
}

func TestUpsertTable_StoreConflictIsReported(t *testing.T) {
	store := newMemoryRevenueStore()
	store.replaceErr = uniqueViolation("revenue_streams", "revenue_streams_row_key")
	notifier := &mockNotifier{}
	svc := NewRevenueService(store, notifier)

	_, err := svc.UpsertTable(context.Background(), upsertRequest("saas", "subscriptions", row("b2b", "smb", "direct", 10)))
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.CodeConflict))
	notifier.AssertNotCalled(t, "EnqueueRevenueTableUpdated", mock.Anything, mock.Anything)
}

func TestUpsertTable_NotifiesCompanyContact(t *testing.T) {
	store := newMemoryRevenueStore()
	notifier := &mockNotifier{}
	notifier.On("EnqueueRevenueTableUpdated", mock.Anything, job.RevenueTableUpdatedPayload{
		CompanyID:        acmeID,
		CompanyName:      "Acme",
		Year:             2024,
		IndustryTypeSlug: "saas",
		IndustryTypeName: "SaaS",
		SourceSlug:       "subscriptions",
		SourceName:       "Subscriptions",
		RowCount:         1,
		NotifyEmail:      contact,
	}).Return(assert.AnError)

	svc := NewRevenueService(store, notifier)
	_, err := svc.UpsertTable(context.Background(), upsertRequest("saas", "subscriptions", row("b2b", "smb", "direct", 10)))

	require.NoError(t, err, "notification failures are not returned")
	notifier.AssertExpectations(t)
}

func TestUpsertTable_ConcurrentWritersNeverMix(t *testing.T) {
	store := newMemoryRevenueStore()
	svc := NewRevenueService(store, quietNotifier())
	ctx := context.Background()

	a := upsertRequest("saas", "subscriptions", row("b2b", "smb", "direct", 50), row("b2b", "enterprise", "direct", 50))
	b := upsertRequest("saas", "subscriptions", row("b2c", "smb", "partners", 100))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); _, _ = svc.UpsertTable(ctx, a) }()
		go func() { defer wg.Done(); _, _ = svc.UpsertTable(ctx, b) }()
	}
	wg.Wait()

	read, err := svc.GetTable(ctx, &a.RevenueTableRequest)
	require.NoError(t, err)
	got := combos(read.Data)
	assert.True(t,
		assert.ObjectsAreEqual([]string{"b2b/enterprise/direct:50", "b2b/smb/direct:50"}, got) ||
			assert.ObjectsAreEqual([]string{"b2c/smb/partners:100"}, got),
		"mixed table: %v", got)
}

func TestGetTable_EmptyKey(t *testing.T) {
	svc := NewRevenueService(newMemoryRevenueStore(), quietNotifier())

	res, err := svc.GetTable(context.Background(), &upsertRequest("saas", "services").RevenueTableRequest)
	require.NoError(t, err)
	assert.NotNil(t, res.Data.Rows)
	assert.Empty(t, res.Data.Rows)
	assert.Equal(t, 0, res.Data.Totals.RowCount)
	assert.True(t, res.Data.Totals.Value.IsZero())
}

func TestClearTable(t *testing.T) {
	store := newMemoryRevenueStore()
	svc := NewRevenueService(store, quietNotifier())
	ctx := context.Background()
	clear := &model.ClearRevenueTableRequest{CompanyID: acmeID, Year: 2024, SourceSlug: "subscriptions"}

	_, err := svc.ClearTable(ctx, clear)
	require.Error(t, err)
	assert.True(t, errs.IsCode(err, errs.CodeNotFound))

	_, err = svc.UpsertTable(ctx, upsertRequest("saas", "subscriptions",
		row("b2b", "smb", "direct", 60),
		row("b2c", "smb", "direct", 40),
	))
	require.NoError(t, err)

	res, err := svc.ClearTable(ctx, clear)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Data.DeletedCount)

	_, err = svc.ClearTable(ctx, clear)
	assert.True(t, errs.IsCode(err, errs.CodeNotFound))
}

func TestYearlyStats(t *testing.T) {
	store := newMemoryRevenueStore()
	svc := NewRevenueService(store, quietNotifier())
	ctx := context.Background()

	v1 := decimal.RequireFromString("100.25")
	v2 := decimal.RequireFromString("50")
	r1 := row("b2b", "smb", "direct", 60)
	r1.Value = &v1
	r2 := row("b2c", "smb", "direct", 40)
	r2.Value = &v2

	_, err := svc.UpsertTable(ctx, upsertRequest("saas", "subscriptions", r1, r2))
	require.NoError(t, err)
	_, err = svc.UpsertTable(ctx, upsertRequest("saas", "services", row("b2b", "smb", "direct", 100)))
	require.NoError(t, err)

	res, err := svc.YearlyStats(ctx, &model.RevenueYearRequest{CompanyID: acmeID, Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Data.RowCount)
	assert.True(t, decimal.RequireFromString("150.25").Equal(res.Data.SumValue))
	require.Len(t, res.Data.Sources, 2)
	assert.InDelta(t, 50, res.Data.Sources[1].AvgPercent, 1e-9)

	sources, err := svc.AvailableSources(ctx, &model.RevenueYearRequest{CompanyID: acmeID, Year: 2023})
	require.NoError(t, err)
	assert.NotNil(t, sources.Data)
	assert.Empty(t, sources.Data)

	_, err = svc.YearlyStats(ctx, &model.RevenueYearRequest{CompanyID: uuid.New(), Year: 2024})
	assert.True(t, errs.IsCode(err, errs.CodeNotFound))
}
