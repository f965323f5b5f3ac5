package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftdesk/internal/model"
)

func hours(v float64) *float64 { return &v }

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

func fixtureEmployees() []model.EmployeeRecord {
	return []model.EmployeeRecord{
		{ID: "1", AccountID: "acc-1", Name: "Ana Gómez", Department: "Atención al Cliente", Position: "Agente"},
		{ID: "2", AccountID: "acc-2", Name: "Luis Pérez", Department: "Logística", Position: "Chofer"},
		{ID: "3", AccountID: "acc-3", Name: "Marta Ruiz", Department: "Atención", Position: "Supervisora"},
	}
}

// ── ParseDateRange ──

func TestParseDateRange(t *testing.T) {
	_, err := ParseDateRange("", "2024-05-31")
	assert.ErrorIs(t, err, ErrDateRangeMissing)

	_, err = ParseDateRange("2024-13-01", "2024-05-31")
	assert.ErrorIs(t, err, ErrDateInvalid)

	_, err = ParseDateRange("2024-06-01", "2024-05-31")
	assert.ErrorIs(t, err, ErrDateRangeInverted)

	r := mustRange(t, "2024-05-01", "2024-05-31")
	assert.True(t, r.Contains(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
}

// ── ShiftHours ──

func TestShiftHours(t *testing.T) {
	cases := []struct {
		name  string
		shift model.ShiftRecord
		want  float64
	}{
		{"跨零点", model.ShiftRecord{StartTime: "22:00", EndTime: "06:00"}, 8},
		{"同日", model.ShiftRecord{StartTime: "08:00", EndTime: "12:30"}, 4.5},
		{"完整时间戳跨日", model.ShiftRecord{StartTime: "2024-05-01T22:00:00", EndTime: "2024-05-02T06:00:00"}, 8},
		{"显式时长优先", model.ShiftRecord{StartTime: "08:00", EndTime: "12:00", DurationHours: hours(3.333)}, 3.33},
		{"带秒", model.ShiftRecord{StartTime: "09:00:00", EndTime: "09:20:00"}, 0.33},
		{"缺少结束时间", model.ShiftRecord{StartTime: "08:00"}, 0},
		{"全部缺失", model.ShiftRecord{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.shift
			assert.InDelta(t, tc.want, ShiftHours(&s), 1e-9)
		})
	}
}

// ── BuildIndex ──

func TestBuildIndex_Empty(t *testing.T) {
	ix := BuildIndex(nil)
	a, b, c := ix.Len()
	assert.Zero(t, a+b+c)
	_, ok := ix.ByID("1")
	assert.False(t, ok)
}

func TestBuildIndex_LastWriteWins(t *testing.T) {
	ix := BuildIndex([]model.EmployeeRecord{
		{ID: "7", Name: "Ana", Department: "Ventas"},
		{ID: "7", Name: "Ana Gómez", Department: "Compras"},
	})
	e, ok := ix.ByID("7")
	require.True(t, ok)
	assert.Equal(t, "Compras", e.Department)

	e, ok = ix.ByName("ANA GOMEZ")
	require.True(t, ok)
	assert.Equal(t, "Compras", e.Department)
}

func TestNilIndex_LookupsMiss(t *testing.T) {
	var ix *Index
	_, ok := ix.ByName("Ana")
	assert.False(t, ok)
	s := model.ShiftRecord{EmployeeName: "Ana"}
	assert.Equal(t, "", ResolveDepartment(&s, ix))
}

// ── 部门解析优先级 ──

func TestResolveDepartment_Priority(t *testing.T) {
	ix := BuildIndex(fixtureEmployees())

	direct := model.ShiftRecord{EmployeeID: "2", Department: "Ventas"}
	assert.Equal(t, "Ventas", ResolveDepartment(&direct, ix), "自带字段优先")

	byID := model.ShiftRecord{EmployeeID: "2", EmployeeName: "Ana Gómez"}
	assert.Equal(t, "Logística", ResolveDepartment(&byID, ix), "ID 查找优先于姓名查找")

	byAccount := model.ShiftRecord{AccountID: "acc-3"}
	assert.Equal(t, "Atención", ResolveDepartment(&byAccount, ix))

	byName := model.ShiftRecord{EmployeeName: "ana gomez"}
	assert.Equal(t, "Atención al Cliente", ResolveDepartment(&byName, ix))

	unknown := model.ShiftRecord{EmployeeID: "99", EmployeeName: "Nadie"}
	assert.Equal(t, "", ResolveDepartment(&unknown, ix))
}

// ── FilterByDepartment ──

func TestFilterByDepartment_NormalizedExactMatch(t *testing.T) {
	ix := BuildIndex(nil)
	r := mustRange(t, "2024-05-01", "2024-05-31")
	shifts := []model.ShiftRecord{
		{ID: "a", Date: "2024-05-02", Department: "ATENCION AL CLIENTE"},
		{ID: "b", Date: "2024-05-02", Department: "Atención"},
		{ID: "c", Date: "2024-05-02", Department: "atención al cliente "},
	}

	got := FilterByDepartment(shifts, r, "Atención al Cliente", ix)
	ids := collectIDs(got)
	assert.Equal(t, []string{"a", "c"}, ids)

	got = FilterByDepartment(shifts, r, "Atención", ix)
	assert.Equal(t, []string{"b"}, collectIDs(got))
}

func TestFilterByDepartment_ExcludesUnresolvable(t *testing.T) {
	ix := BuildIndex(fixtureEmployees())
	r := mustRange(t, "2024-05-01", "2024-05-31")
	shifts := []model.ShiftRecord{
		{ID: "no-date", EmployeeID: "1"},
		{ID: "no-dept", Date: "2024-05-03", EmployeeName: "Desconocido"},
		{ID: "out-of-range", Date: "2024-06-01", EmployeeID: "1"},
		{ID: "by-id", Date: "2024-05-01", EmployeeID: "1"},
		{ID: "by-start-ts", StartTime: "2024-05-31T22:00:00", EndTime: "2024-06-01T06:00:00", AccountID: "acc-1"},
		{ID: "direct-mismatch", Date: "2024-05-04", EmployeeID: "1", Department: "Logística"},
	}

	got := FilterByDepartment(shifts, r, "Atención al Cliente", ix)
	assert.Equal(t, []string{"by-id", "by-start-ts"}, collectIDs(got))
}

func TestFilterByDepartment_Idempotent(t *testing.T) {
	ix := BuildIndex(fixtureEmployees())
	r := mustRange(t, "2024-05-01", "2024-05-31")
	shifts := []model.ShiftRecord{
		{ID: "1", Date: "2024-05-01", EmployeeID: "1"},
		{ID: "2", Date: "2024-05-10", EmployeeID: "2"},
		{ID: "3", Date: "2024-05-11", EmployeeName: "Ana Gómez"},
		{ID: "4", Date: "2024-07-11", EmployeeName: "Ana Gómez"},
	}
	once := FilterByDepartment(shifts, r, "Atención al Cliente", ix)
	twice := FilterByDepartment(once, r, "Atención al Cliente", ix)
	assert.Equal(t, once, twice)
}

func TestFilterByDepartment_EmptyTarget(t *testing.T) {
	r := mustRange(t, "2024-05-01", "2024-05-31")
	got := FilterByDepartment([]model.ShiftRecord{{Date: "2024-05-01", Department: ""}}, r, "  ", nil)
	assert.Empty(t, got)
}

// ── FilterByEmployee ──

func TestFilterByEmployee_MatchesAnyIdentifier(t *testing.T) {
	ix := BuildIndex(fixtureEmployees())
	r := mustRange(t, "2024-05-01", "2024-05-31")
	shifts := []model.ShiftRecord{
		{ID: "by-id", Date: "2024-05-01", EmployeeID: "1"},
		{ID: "by-account", Date: "2024-05-02", AccountID: "acc-1"},
		{ID: "by-name", Date: "2024-05-03", EmployeeName: "ANA GOMEZ"},
		{ID: "other", Date: "2024-05-03", EmployeeID: "2"},
	}
	got := FilterByEmployee(shifts, r, "1", ix)
	assert.Equal(t, []string{"by-id", "by-account", "by-name"}, collectIDs(got))

	got = FilterByEmployee(shifts, r, "", ix)
	assert.Empty(t, got)
}

// ── Aggregate ──

func TestAggregate_TwoShiftsSameEmployee(t *testing.T) {
	shifts := []model.ShiftRecord{
		{EmployeeName: "Ana Gómez", DurationHours: hours(4.5), Department: "Ventas"},
		{EmployeeName: "Ana Gómez", DurationHours: hours(3.25)},
	}
	res := Aggregate(shifts, BuildIndex(nil))
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Ana Gómez", res.Rows[0].Employee)
	assert.InDelta(t, 7.75, res.Rows[0].TotalHours, 1e-9)
	assert.Equal(t, 2, res.Rows[0].Shifts)
	assert.Equal(t, "Ventas", res.Rows[0].Department)
}

func TestAggregate_UnnamedSentinel(t *testing.T) {
	res := Aggregate([]model.ShiftRecord{{StartTime: "08:00", EndTime: "10:00"}, {EmployeeName: "  "}}, nil)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, UnnamedEmployee, res.Rows[0].Employee)
	assert.Equal(t, 2, res.Rows[0].Shifts)
	assert.InDelta(t, 2.0, res.Rows[0].TotalHours, 1e-9)
}

func TestAggregate_DepartmentNotOverwritten(t *testing.T) {
	ix := BuildIndex(fixtureEmployees())
	shifts := []model.ShiftRecord{
		{EmployeeName: "Pedro", Department: "", Position: ""},
		{EmployeeName: "Pedro", Department: "Ventas", Position: "Cajero"},
		{EmployeeName: "Pedro", Department: "Compras", Position: "Jefe"},
	}
	res := Aggregate(shifts, ix)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Ventas", res.Rows[0].Department, "空值可被后续填充，非空后不再覆盖")
	assert.Equal(t, "Cajero", res.Rows[0].Position)
}

func TestAggregate_FirstAppearanceOrder(t *testing.T) {
	shifts := []model.ShiftRecord{
		{EmployeeName: "Zoe", DurationHours: hours(1)},
		{EmployeeName: "Ana", DurationHours: hours(1)},
		{EmployeeName: "Zoe", DurationHours: hours(1)},
	}
	res := Aggregate(shifts, nil)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Zoe", res.Rows[0].Employee)
	assert.Equal(t, "Ana", res.Rows[1].Employee)
}

func TestAggregate_SummaryProperties(t *testing.T) {
	shifts := []model.ShiftRecord{
		{EmployeeName: "A", DurationHours: hours(1.111)},
		{EmployeeName: "B", StartTime: "22:15", EndTime: "06:40"},
		{EmployeeName: "A", StartTime: "07:05", EndTime: "15:50"},
		{EmployeeName: "C", DurationHours: hours(0.005)},
	}
	res := Aggregate(shifts, nil)

	var sum float64
	for _, r := range res.Rows {
		sum += r.TotalHours
	}
	assert.LessOrEqual(t, math.Abs(res.Summary.TotalHours-sum), 0.01)
	assert.Equal(t, 3, res.Summary.EmployeeCount)
	assert.InDelta(t, Round2(res.Summary.TotalHours/3), res.Summary.AverageHours, 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil, nil)
	assert.True(t, res.Empty())
	assert.Zero(t, res.Summary.EmployeeCount)
	assert.Zero(t, res.Summary.AverageHours)
	assert.Zero(t, res.Summary.TotalHours)
}

// ── Departments ──

func TestDepartments_DedupeByNormalizedForm(t *testing.T) {
	got := Departments([]model.EmployeeRecord{
		{Department: "Logística"},
		{Department: "LOGISTICA"},
		{Department: ""},
		{Department: "Atención al Cliente"},
	})
	assert.Equal(t, []string{"Atención al Cliente", "Logística"}, got)
}

// ── BuildDetail ──

func TestBuildDetail_SortedWithSummary(t *testing.T) {
	ix := BuildIndex(fixtureEmployees())
	shifts := []model.ShiftRecord{
		{EmployeeID: "1", Date: "2024-05-03", StartTime: "14:00", EndTime: "18:00"},
		{EmployeeID: "1", Date: "2024-05-01", StartTime: "22:00", EndTime: "06:00"},
		{EmployeeID: "1", Date: "2024-05-01", StartTime: "08:00", EndTime: "09:30"},
	}
	d := BuildDetail(shifts, ix, "Ana Gómez")

	assert.Equal(t, "Ana Gómez", d.Employee)
	require.Len(t, d.Lines, 3)
	assert.Equal(t, "08:00", d.Lines[0].Start)
	assert.Equal(t, "22:00", d.Lines[1].Start)
	assert.Equal(t, "Atención al Cliente", d.Lines[2].Department)
	assert.InDelta(t, 13.5, d.Summary.TotalHours, 1e-9)
	assert.Equal(t, 3, d.Summary.ShiftCount)
	assert.InDelta(t, 4.5, d.Summary.AverageHours, 1e-9)
}

func collectIDs(shifts []model.ShiftRecord) []string {
	ids := make([]string, 0, len(shifts))
	for _, s := range shifts {
		ids = append(ids, s.ID)
	}
	return ids
}
