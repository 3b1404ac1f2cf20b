// file: internals/features/reports/service/report_service.go
package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	expenseModel "messku_backend/internals/features/expenses/model"
	mealModel "messku_backend/internals/features/meals/model"
	memberModel "messku_backend/internals/features/members/model"
	memberService "messku_backend/internals/features/members/service"
	messModel "messku_backend/internals/features/messes/model"
	"messku_backend/internals/helpers/dates"
	"messku_backend/internals/helpers/errs"
)

/* =========================
   Group key (typed, bukan field lookup dinamis)
   ========================= */

type GroupBy int

const (
	GroupByMess GroupBy = iota
	GroupByUser
	GroupByDate
)

func ParseGroupBy(s string) (GroupBy, error) {
	switch s {
	case "", "mess":
		return GroupByMess, nil
	case "user":
		return GroupByUser, nil
	case "date":
		return GroupByDate, nil
	}
	return 0, errs.InvalidStatus("group_by harus mess, user, atau date")
}

type Actor struct {
	MemberID   uuid.UUID
	MessID     uuid.UUID
	Privileged bool
}

type ReportFilters struct {
	MessID   *uuid.UUID
	UserID   *uuid.UUID
	DateFrom *time.Time
	DateTo   *time.Time
	GroupBy  GroupBy
	Skip     int
	Limit    int
}

/* =========================
   Hasil (derived, tidak dipersist)
   ========================= */

type SlotBreakdown struct {
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type ReportRow struct {
	// salah satu dari tiga blok ini terisi, sesuai group_by
	MessID   *uuid.UUID `json:"mess_id,omitempty"`
	MessName string     `json:"mess_name,omitempty"`
	MessCode string     `json:"mess_code,omitempty"`

	UserID    *uuid.UUID `json:"user_id,omitempty"`
	UserName  string     `json:"user_name,omitempty"`
	UserEmail string     `json:"user_email,omitempty"`

	Date string `json:"date,omitempty"`

	Breakfast SlotBreakdown `json:"breakfast"`
	Lunch     SlotBreakdown `json:"lunch"`
	Dinner    SlotBreakdown `json:"dinner"`

	// total meal = jumlah slot aktif (konvensi flag, bukan kuantitas)
	TotalMeals         int64           `json:"total_meals"`
	TotalInactiveMeals int64           `json:"total_inactive_meals"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	PerMealRate        decimal.Decimal `json:"per_meal_rate"`

	displayKey string
}

type ReportService struct {
	DB      *gorm.DB
	Members *memberService.Directory
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, Members: memberService.NewDirectory(db)}
}

/* =========================
   Baris hasil agregasi mentah
   ========================= */

type mealAggRow struct {
	GroupUUID uuid.UUID `gorm:"column:group_uuid"`
	GroupDate time.Time `gorm:"column:group_date"`

	BreakfastActive   int64 `gorm:"column:breakfast_active"`
	BreakfastInactive int64 `gorm:"column:breakfast_inactive"`
	LunchActive       int64 `gorm:"column:lunch_active"`
	LunchInactive     int64 `gorm:"column:lunch_inactive"`
	DinnerActive      int64 `gorm:"column:dinner_active"`
	DinnerInactive    int64 `gorm:"column:dinner_inactive"`
}

func (r *mealAggRow) key(g GroupBy) string {
	if g == GroupByDate {
		return dates.FormatYMD(r.GroupDate)
	}
	return r.GroupUUID.String()
}

type expenseAggRow struct {
	GroupUUID uuid.UUID       `gorm:"column:group_uuid"`
	GroupDate time.Time       `gorm:"column:group_date"`
	TotalCost decimal.Decimal `gorm:"column:total_cost"`
}

func (r *expenseAggRow) key(g GroupBy) string {
	if g == GroupByDate {
		return dates.FormatYMD(r.GroupDate)
	}
	return r.GroupUUID.String()
}

/* =========================
   Laporan utama
   ========================= */

// GenerateMealReport: dua agregasi independen berjalan paralel, hasil
// di-merge per group key di memori. Read-only, tidak pernah memutasi
// meal/expense/account.
func (s *ReportService) GenerateMealReport(ctx context.Context, actor Actor, f ReportFilters) ([]ReportRow, error) {
	if err := s.authorize(&f, actor); err != nil {
		return nil, err
	}

	var mealRows []mealAggRow
	var expRows []expenseAggRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.aggregateMeals(gctx, f, &mealRows)
	})
	g.Go(func() error {
		return s.aggregateExpenses(gctx, f, &expRows)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := s.merge(f.GroupBy, mealRows, expRows)

	rows, err := s.resolveDisplay(f.GroupBy, rows, false)
	if err != nil {
		return nil, err
	}

	sortRows(rows)
	return paginate(rows, f.Skip, f.Limit), nil
}

// GenerateUsersMealReport: selalu group by user; baris yang lookup
// membernya gagal (id yatim) dibuang diam-diam, bukan menggagalkan
// seluruh laporan.
func (s *ReportService) GenerateUsersMealReport(ctx context.Context, actor Actor, f ReportFilters) ([]ReportRow, error) {
	f.GroupBy = GroupByUser
	if err := s.authorize(&f, actor); err != nil {
		return nil, err
	}

	var mealRows []mealAggRow
	var expRows []expenseAggRow

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.aggregateMeals(gctx, f, &mealRows)
	})
	g.Go(func() error {
		return s.aggregateExpenses(gctx, f, &expRows)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows := s.merge(GroupByUser, mealRows, expRows)

	rows, err := s.resolveDisplay(GroupByUser, rows, true)
	if err != nil {
		return nil, err
	}

	sortRows(rows)
	return paginate(rows, f.Skip, f.Limit), nil
}

func (s *ReportService) authorize(f *ReportFilters, actor Actor) error {
	member, err := s.Members.FindMember(s.DB, actor.MemberID)
	if err != nil {
		return err
	}
	if !member.MemberIsApproved {
		return errs.NotApproved("membership belum di-approve")
	}

	if !actor.Privileged {
		if f.MessID != nil && *f.MessID != actor.MessID {
			return errs.Forbidden("tidak boleh melihat laporan mess lain")
		}
		// member biasa selalu terkunci ke mess sendiri
		messID := actor.MessID
		f.MessID = &messID
	}
	return nil
}

/* =========================
   Agregasi meal: unwind per slot lewat SUM(CASE WHEN ...)
   ========================= */

func (s *ReportService) aggregateMeals(ctx context.Context, f ReportFilters, out *[]mealAggRow) error {
	q := mealModel.ScopeAlive(s.DB.WithContext(ctx).Model(&mealModel.MealRecord{}))

	var keySelect, keyGroup string
	switch f.GroupBy {
	case GroupByUser:
		keySelect = "meal_record_member_id AS group_uuid"
		keyGroup = "meal_record_member_id"
	case GroupByDate:
		keySelect = "meal_record_date AS group_date"
		keyGroup = "meal_record_date"
	default:
		keySelect = "meal_record_mess_id AS group_uuid"
		keyGroup = "meal_record_mess_id"
	}

	q = q.Select(keySelect + `,
		SUM(CASE WHEN meal_record_breakfast_active THEN 1 ELSE 0 END) AS breakfast_active,
		SUM(CASE WHEN meal_record_breakfast_active THEN 0 ELSE 1 END) AS breakfast_inactive,
		SUM(CASE WHEN meal_record_lunch_active THEN 1 ELSE 0 END) AS lunch_active,
		SUM(CASE WHEN meal_record_lunch_active THEN 0 ELSE 1 END) AS lunch_inactive,
		SUM(CASE WHEN meal_record_dinner_active THEN 1 ELSE 0 END) AS dinner_active,
		SUM(CASE WHEN meal_record_dinner_active THEN 0 ELSE 1 END) AS dinner_inactive`).
		Group(keyGroup)

	if f.MessID != nil {
		q = q.Where("meal_record_mess_id = ?", *f.MessID)
	}
	if f.UserID != nil {
		q = q.Where("meal_record_member_id = ?", *f.UserID)
	}
	if f.DateFrom != nil {
		q = q.Where("meal_record_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("meal_record_date <= ?", *f.DateTo)
	}

	return q.Scan(out).Error
}

/* =========================
   Agregasi expense: hanya grocery approved yang hidup
   ========================= */

func (s *ReportService) aggregateExpenses(ctx context.Context, f ReportFilters, out *[]expenseAggRow) error {
	q := expenseModel.ScopeAlive(s.DB.WithContext(ctx).Model(&expenseModel.Expense{})).
		Where("expense_category = ?", expenseModel.ExpenseCategoryGrocery).
		Where("expense_status = ?", expenseModel.ExpenseStatusApproved)

	var keySelect, keyGroup string
	switch f.GroupBy {
	case GroupByUser:
		keySelect = "expense_created_by AS group_uuid"
		keyGroup = "expense_created_by"
	case GroupByDate:
		keySelect = "expense_date AS group_date"
		keyGroup = "expense_date"
	default:
		keySelect = "expense_mess_id AS group_uuid"
		keyGroup = "expense_mess_id"
	}

	q = q.Select(keySelect + ", SUM(expense_amount) AS total_cost").Group(keyGroup)

	if f.MessID != nil {
		q = q.Where("expense_mess_id = ?", *f.MessID)
	}
	if f.UserID != nil {
		q = q.Where("expense_created_by = ?", *f.UserID)
	}
	if f.DateFrom != nil {
		q = q.Where("expense_date >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("expense_date <= ?", *f.DateTo)
	}

	return q.Scan(out).Error
}

/* =========================
   Merge per key + hitung tarif
   ========================= */

func (s *ReportService) merge(g GroupBy, mealRows []mealAggRow, expRows []expenseAggRow) []ReportRow {
	costByKey := make(map[string]decimal.Decimal, len(expRows))
	for i := range expRows {
		costByKey[expRows[i].key(g)] = expRows[i].TotalCost
	}

	out := make([]ReportRow, 0, len(mealRows))
	for i := range mealRows {
		m := &mealRows[i]
		key := m.key(g)

		row := ReportRow{
			Breakfast: SlotBreakdown{Active: m.BreakfastActive, Inactive: m.BreakfastInactive},
			Lunch:     SlotBreakdown{Active: m.LunchActive, Inactive: m.LunchInactive},
			Dinner:    SlotBreakdown{Active: m.DinnerActive, Inactive: m.DinnerInactive},
		}
		row.TotalMeals = m.BreakfastActive + m.LunchActive + m.DinnerActive
		row.TotalInactiveMeals = m.BreakfastInactive + m.LunchInactive + m.DinnerInactive

		row.TotalCost = decimal.Zero
		if cost, ok := costByKey[key]; ok {
			row.TotalCost = cost
		}

		// tarif = biaya / total meal, 2 desimal half-up; 0 bila pembagi 0
		row.PerMealRate = decimal.Zero
		if row.TotalMeals > 0 {
			row.PerMealRate = row.TotalCost.DivRound(decimal.NewFromInt(row.TotalMeals), 2)
		}

		switch g {
		case GroupByUser:
			id := m.GroupUUID
			row.UserID = &id
		case GroupByDate:
			row.Date = key
			row.displayKey = key
		default:
			id := m.GroupUUID
			row.MessID = &id
		}

		out = append(out, row)
	}
	return out
}

/* =========================
   Resolusi display + sort + slice
   ========================= */

func (s *ReportService) resolveDisplay(g GroupBy, rows []ReportRow, dropOrphans bool) ([]ReportRow, error) {
	switch g {
	case GroupByMess:
		ids := make([]uuid.UUID, 0, len(rows))
		for i := range rows {
			if rows[i].MessID != nil {
				ids = append(ids, *rows[i].MessID)
			}
		}
		var messes []messModel.Mess
		if len(ids) > 0 {
			if err := s.DB.Where("mess_id IN ?", ids).Find(&messes).Error; err != nil {
				return nil, err
			}
		}
		byID := make(map[uuid.UUID]*messModel.Mess, len(messes))
		for i := range messes {
			byID[messes[i].MessID] = &messes[i]
		}
		for i := range rows {
			if rows[i].MessID == nil {
				continue
			}
			if m, ok := byID[*rows[i].MessID]; ok {
				rows[i].MessName = m.MessName
				rows[i].MessCode = m.MessCode
				rows[i].displayKey = m.MessName
			} else {
				rows[i].displayKey = rows[i].MessID.String()
			}
		}
		return rows, nil

	case GroupByUser:
		ids := make([]uuid.UUID, 0, len(rows))
		for i := range rows {
			if rows[i].UserID != nil {
				ids = append(ids, *rows[i].UserID)
			}
		}
		var members []memberModel.Member
		if len(ids) > 0 {
			if err := s.DB.Where("member_id IN ?", ids).Find(&members).Error; err != nil {
				return nil, err
			}
		}
		byID := make(map[uuid.UUID]*memberModel.Member, len(members))
		for i := range members {
			byID[members[i].MemberID] = &members[i]
		}

		out := rows[:0]
		for i := range rows {
			if rows[i].UserID == nil {
				continue
			}
			m, ok := byID[*rows[i].UserID]
			if !ok {
				if dropOrphans {
					continue
				}
				rows[i].displayKey = rows[i].UserID.String()
				out = append(out, rows[i])
				continue
			}
			rows[i].UserName = m.MemberName
			rows[i].UserEmail = m.MemberEmail
			rows[i].displayKey = m.MemberName
			out = append(out, rows[i])
		}
		return out, nil

	default:
		return rows, nil
	}
}

func sortRows(rows []ReportRow) {
	cl := collate.New(language.Indonesian, collate.IgnoreCase)
	sort.SliceStable(rows, func(i, j int) bool {
		return cl.CompareString(rows[i].displayKey, rows[j].displayKey) < 0
	})
}

// paginate: skip/limit di memori atas hasil yang sudah di-sort,
// bukan didorong ke query.
func paginate(rows []ReportRow, skip, limit int) []ReportRow {
	if skip < 0 {
		skip = 0
	}
	if skip >= len(rows) {
		return []ReportRow{}
	}
	rows = rows[skip:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}
