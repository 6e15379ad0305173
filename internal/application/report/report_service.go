package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goldfin/backend/internal/domain/lending"
	"github.com/goldfin/backend/internal/domain/org"
	"github.com/goldfin/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Cache is a best-effort TTL cache for the heavier read models. A miss
// or a cache failure always falls through to a fresh computation.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// NopCache never hits
type NopCache struct{}

func (NopCache) Get(context.Context, string, any) (bool, error)        { return false, nil }
func (NopCache) Set(context.Context, string, any, time.Duration) error { return nil }

const summaryCacheTTL = 5 * time.Minute

// Service composes the accrual calculator and the transaction aggregator
// into the dashboard read models.
type Service struct {
	companyRepo  org.CompanyRepository
	customerRepo org.CustomerRepository
	schemeRepo   org.SchemeRepository
	penaltyRepo  org.PenaltyRepository
	loanRepo     lending.LoanRepository
	otherRepo    lending.OtherLoanRepository
	cache        Cache
	logger       *zap.Logger
	now          func() time.Time
}

func NewService(
	companyRepo org.CompanyRepository,
	customerRepo org.CustomerRepository,
	schemeRepo org.SchemeRepository,
	penaltyRepo org.PenaltyRepository,
	loanRepo lending.LoanRepository,
	otherRepo lending.OtherLoanRepository,
	cache Cache,
	logger *zap.Logger,
) *Service {
	if cache == nil {
		cache = NopCache{}
	}
	return &Service{
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		schemeRepo:   schemeRepo,
		penaltyRepo:  penaltyRepo,
		loanRepo:     loanRepo,
		otherRepo:    otherRepo,
		cache:        cache,
		logger:       logger,
		now:          time.Now,
	}
}

// ===================== Daily Report =====================

// DailyRow is one ledger event that happened on the report day
type DailyRow struct {
	LoanNumber   string          `json:"loan_number"`
	CustomerName string          `json:"customer_name"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
}

type DailyReportResponse struct {
	Date time.Time  `json:"date"`
	Rows []DailyRow `json:"rows"`
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DailyReport lists every loan-ledger event of one calendar day, across
// issuance, interest, uchak, part payments, part releases and closures,
// optionally restricted to a branch.
func (s *Service) DailyReport(ctx context.Context, companyID uuid.UUID, day time.Time, branchID *uuid.UUID) (*DailyReportResponse, error) {
	loans, err := s.loanRepo.FindAllForCompany(ctx, companyID, shared.Unpaged())
	if err != nil {
		return nil, err
	}
	names, err := s.customerNames(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var rows []DailyRow
	for i := range loans {
		loan := &loans[i]
		if branchID != nil && loan.BranchID != *branchID {
			continue
		}
		name := names[loan.CustomerID]
		add := func(kind string, amount decimal.Decimal, at time.Time) {
			if !sameDay(at, day) {
				return
			}
			rows = append(rows, DailyRow{
				LoanNumber:   loan.LoanNumber,
				CustomerName: name,
				Type:         kind,
				Amount:       amount,
				Date:         at,
			})
		}

		add(StatusLoanIssued, loan.LoanAmount, loan.IssueDate)
		for j := range loan.Interests {
			entry := &loan.Interests[j]
			kind := StatusLoanInterest
			if entry.IsUchak {
				kind = StatusUchakInterest
			}
			add(kind, entry.AmountPaid, entry.To)
		}
		for j := range loan.PartPayments {
			add(StatusLoanPartPayment, loan.PartPayments[j].Amount, loan.PartPayments[j].Date)
		}
		for j := range loan.PartReleases {
			add(StatusLoanPartRelease, loan.PartReleases[j].Amount, loan.PartReleases[j].Date)
		}
		if loan.Closure != nil {
			add(StatusLoanClosed, loan.Closure.NetAmount, loan.Closure.Date)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return &DailyReportResponse{Date: day, Rows: rows}, nil
}

// ===================== Loan Summary =====================

// LoanSummaryRow is a loan with its live accrual figures attached
type LoanSummaryRow struct {
	LoanID          uuid.UUID        `json:"loan_id"`
	LoanNumber      string           `json:"loan_number"`
	CustomerName    string           `json:"customer_name"`
	LoanAmount      decimal.Decimal  `json:"loan_amount"`
	Status          string           `json:"status"`
	IssueDate       time.Time        `json:"issue_date"`
	PendingInterest decimal.Decimal  `json:"pending_interest"`
	PenaltyAmount   decimal.Decimal  `json:"penalty_amount"`
	Day             int              `json:"day"`
	ClosedDate      *time.Time       `json:"closed_date,omitempty"`
	CloseAmt        *decimal.Decimal `json:"close_amt,omitempty"`
	LastAmtPayDate  *time.Time       `json:"last_amt_pay_date,omitempty"`
}

type LoanSummaryResponse struct {
	Loans []LoanSummaryRow `json:"loans"`
}

// LoanSummary attaches pending interest, penalty, cumulative interest
// days and closing figures to every loan of the company.
func (s *Service) LoanSummary(ctx context.Context, companyID uuid.UUID, filter shared.Filter) (*LoanSummaryResponse, error) {
	loans, err := s.loanRepo.FindAllForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, err
	}
	names, err := s.customerNames(ctx, companyID)
	if err != nil {
		return nil, err
	}
	schemes, err := s.schemesByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	tiers, err := s.penaltyRepo.FindAllOrdered(ctx, companyID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	rows := make([]LoanSummaryRow, 0, len(loans))
	for i := range loans {
		loan := &loans[i]
		accrual := lending.ComputePendingInterest(accrualInputFor(loan, schemes[loan.SchemeID], tiers), today)

		row := LoanSummaryRow{
			LoanID:          loan.ID,
			LoanNumber:      loan.LoanNumber,
			CustomerName:    names[loan.CustomerID],
			LoanAmount:      loan.LoanAmount,
			Status:          string(loan.Status),
			IssueDate:       loan.IssueDate,
			PendingInterest: accrual.PendingInterest,
			PenaltyAmount:   accrual.PenaltyAmount,
			Day:             loan.CumulativeInterestDays(),
			LastAmtPayDate:  lastPayDate(loan),
		}
		if loan.Closure != nil {
			row.ClosedDate = &loan.Closure.Date
			amt := loan.Closure.NetAmount
			row.CloseAmt = &amt
		}
		rows = append(rows, row)
	}
	return &LoanSummaryResponse{Loans: rows}, nil
}

// lastPayDate is the latest of the loan's part-payment and part-release
// timestamps, nil when neither exists.
func lastPayDate(loan *lending.IssuedLoan) *time.Time {
	var last *time.Time
	consider := func(t time.Time) {
		if last == nil || t.After(*last) {
			cp := t
			last = &cp
		}
	}
	for i := range loan.PartPayments {
		consider(loan.PartPayments[i].Date)
	}
	for i := range loan.PartReleases {
		consider(loan.PartReleases[i].Date)
	}
	return last
}

// ===================== Customer Statement =====================

// StatementRow is one line of the running-balance ledger
type StatementRow struct {
	Date    time.Time       `json:"date"`
	Type    string          `json:"type"`
	Credit  decimal.Decimal `json:"credit"`
	Debit   decimal.Decimal `json:"debit"`
	Balance decimal.Decimal `json:"balance"`
	Remark  string          `json:"remark,omitempty"`
}

// InterestStatementRow is one interest entry of the sub-statement
type InterestStatementRow struct {
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Days       int             `json:"days"`
	Interest   decimal.Decimal `json:"interest"`
	Penalty    decimal.Decimal `json:"penalty"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	CrDr       decimal.Decimal `json:"cr_dr"`
	IsUchak    bool            `json:"is_uchak"`
}

type CustomerStatementResponse struct {
	LoanNumber   string                 `json:"loan_number"`
	CustomerName string                 `json:"customer_name"`
	Rows         []StatementRow         `json:"rows"`
	Interests    []InterestStatementRow `json:"interests"`
}

// debitEvent is an internal ordering unit of the statement
type debitEvent struct {
	date   time.Time
	kind   string
	amount decimal.Decimal
	remark string
}

// buildStatementRows is the pure statement construction: a credit row
// for the issuance, then each debit event in chronological order with
// balance = previous balance - debit. Interest entries never touch the
// balance column.
func buildStatementRows(loan *lending.IssuedLoan) []StatementRow {
	events := make([]debitEvent, 0, len(loan.PartPayments)+len(loan.PartReleases)+1)
	for i := range loan.PartPayments {
		p := &loan.PartPayments[i]
		events = append(events, debitEvent{p.Date, StatusLoanPartPayment, p.Amount, p.Remark})
	}
	for i := range loan.PartReleases {
		p := &loan.PartReleases[i]
		events = append(events, debitEvent{p.Date, StatusLoanPartRelease, p.Amount, p.Remark})
	}
	if loan.Closure != nil {
		events = append(events, debitEvent{loan.Closure.Date, StatusLoanClosed, loan.Closure.NetAmount, loan.Closure.Remark})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].date.Before(events[j].date) })

	rows := make([]StatementRow, 0, len(events)+1)
	balance := loan.LoanAmount
	rows = append(rows, StatementRow{
		Date:    loan.IssueDate,
		Type:    StatusLoanIssued,
		Credit:  loan.LoanAmount,
		Debit:   decimal.Zero,
		Balance: balance,
	})
	for _, ev := range events {
		balance = balance.Sub(ev.amount)
		rows = append(rows, StatementRow{
			Date:    ev.date,
			Type:    ev.kind,
			Credit:  decimal.Zero,
			Debit:   ev.amount,
			Balance: balance,
			Remark:  ev.remark,
		})
	}
	return rows
}

// CustomerStatement builds the running-balance ledger for one loan plus
// the interest-only sub-statement.
func (s *Service) CustomerStatement(ctx context.Context, companyID, loanID uuid.UUID) (*CustomerStatementResponse, error) {
	loan, err := s.loanRepo.FindByIDForCompany(ctx, companyID, loanID)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, shared.ErrNotFound
	}
	names, err := s.customerNames(ctx, companyID)
	if err != nil {
		return nil, err
	}

	interests := make([]InterestStatementRow, 0, len(loan.Interests))
	for i := range loan.Interests {
		e := &loan.Interests[i]
		interests = append(interests, InterestStatementRow{
			From:       e.From,
			To:         e.To,
			Days:       e.Days,
			Interest:   e.InterestAmount,
			Penalty:    e.Penalty,
			AmountPaid: e.AmountPaid,
			CrDr:       e.CrDr,
			IsUchak:    e.IsUchak,
		})
	}

	return &CustomerStatementResponse{
		LoanNumber:   loan.LoanNumber,
		CustomerName: names[loan.CustomerID],
		Rows:         buildStatementRows(loan),
		Interests:    interests,
	}, nil
}

// ===================== Portfolio Summary =====================

type PortfolioSummaryResponse struct {
	TotalPortfolio   decimal.Decimal `json:"total_portfolio"`
	MonthlyAverage   decimal.Decimal `json:"monthly_average"`
	TotalClosedValue decimal.Decimal `json:"total_closed_value"`
	MonthsActive     int             `json:"months_active"`
}

// monthsSince counts calendar months from a to b, both endpoints
// included, never less than one.
func monthsSince(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

// PortfolioSummary totals the loan book and averages it over the months
// the company has existed. Cached briefly, the figures move slowly.
func (s *Service) PortfolioSummary(ctx context.Context, companyID uuid.UUID) (*PortfolioSummaryResponse, error) {
	cacheKey := fmt.Sprintf("report:portfolio:%s", companyID)
	var cached PortfolioSummaryResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.logger.Warn("portfolio cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, shared.ErrNotFound
	}
	loans, err := s.loanRepo.FindAllForCompany(ctx, companyID, shared.Unpaged())
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	closed := decimal.Zero
	for i := range loans {
		total = total.Add(loans[i].LoanAmount)
		if loans[i].Closure != nil {
			closed = closed.Add(loans[i].Closure.NetAmount)
		}
	}
	months := monthsSince(company.CreatedAt, s.now())

	resp := &PortfolioSummaryResponse{
		TotalPortfolio:   total,
		MonthlyAverage:   total.Div(decimal.NewFromInt(int64(months))).Round(2),
		TotalClosedValue: closed,
		MonthsActive:     months,
	}
	if err := s.cache.Set(ctx, cacheKey, resp, summaryCacheTTL); err != nil {
		s.logger.Warn("portfolio cache write failed", zap.Error(err))
	}
	return resp, nil
}

// ===================== Chart Series =====================

// ChartRange selects the bucket layout of a series
type ChartRange string

const (
	ChartWeek  ChartRange = "week"
	ChartMonth ChartRange = "month"
	ChartYear  ChartRange = "year"
)

// ChartLedger selects which loan book the series covers
type ChartLedger string

const (
	LedgerLoans      ChartLedger = "loans"
	LedgerOtherLoans ChartLedger = "other_loans"
)

// ChartBucket is one point of the series
type ChartBucket struct {
	Label      string          `json:"label"`
	Issued     decimal.Decimal `json:"issued"`
	Closed     decimal.Decimal `json:"closed"`
	Difference decimal.Decimal `json:"difference"`
}

type ChartSeriesResponse struct {
	Range   ChartRange    `json:"range"`
	Ledger  ChartLedger   `json:"ledger"`
	Buckets []ChartBucket `json:"buckets"`
}

// chartEvent is an issuance or closure with its amount and date
type chartEvent struct {
	date   time.Time
	amount decimal.Decimal
	closed bool
}

// bucketSpec maps an event date to a bucket index; -1 means outside
type bucketSpec struct {
	labels []string
	index  func(t time.Time) int
}

// chartLayout builds the fixed calendar buckets: the last seven days by
// weekday name, the twelve months of the current year, or the last five
// calendar years.
func chartLayout(r ChartRange, now time.Time) bucketSpec {
	switch r {
	case ChartWeek:
		labels := make([]string, 7)
		days := make(map[string]int, 7)
		for i := 0; i < 7; i++ {
			day := now.AddDate(0, 0, i-6)
			labels[i] = day.Weekday().String()
			days[day.Format("2006-01-02")] = i
		}
		return bucketSpec{labels: labels, index: func(t time.Time) int {
			if i, ok := days[t.Format("2006-01-02")]; ok {
				return i
			}
			return -1
		}}
	case ChartYear:
		labels := make([]string, 5)
		first := now.Year() - 4
		for i := 0; i < 5; i++ {
			labels[i] = fmt.Sprintf("%d", first+i)
		}
		return bucketSpec{labels: labels, index: func(t time.Time) int {
			i := t.Year() - first
			if i < 0 || i > 4 {
				return -1
			}
			return i
		}}
	default: // ChartMonth
		labels := make([]string, 12)
		for i := 0; i < 12; i++ {
			labels[i] = time.Month(i + 1).String()
		}
		year := now.Year()
		return bucketSpec{labels: labels, index: func(t time.Time) int {
			if t.Year() != year {
				return -1
			}
			return int(t.Month()) - 1
		}}
	}
}

func buildSeries(events []chartEvent, r ChartRange, now time.Time) []ChartBucket {
	spec := chartLayout(r, now)
	buckets := make([]ChartBucket, len(spec.labels))
	for i, label := range spec.labels {
		buckets[i] = ChartBucket{
			Label:      label,
			Issued:     decimal.Zero,
			Closed:     decimal.Zero,
			Difference: decimal.Zero,
		}
	}
	for _, ev := range events {
		i := spec.index(ev.date)
		if i < 0 {
			continue
		}
		if ev.closed {
			buckets[i].Closed = buckets[i].Closed.Add(ev.amount)
		} else {
			buckets[i].Issued = buckets[i].Issued.Add(ev.amount)
		}
	}
	for i := range buckets {
		buckets[i].Difference = buckets[i].Issued.Sub(buckets[i].Closed)
	}
	return buckets
}

// ChartSeries buckets issuance against closure volume for the dashboard
// charts, on either the loan or the other-loan ledger.
func (s *Service) ChartSeries(ctx context.Context, companyID uuid.UUID, ledger ChartLedger, r ChartRange) (*ChartSeriesResponse, error) {
	cacheKey := fmt.Sprintf("report:chart:%s:%s:%s", companyID, ledger, r)
	var cached ChartSeriesResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err != nil {
		s.logger.Warn("chart cache read failed", zap.Error(err))
	} else if hit {
		return &cached, nil
	}

	var events []chartEvent
	switch ledger {
	case LedgerOtherLoans:
		loans, err := s.otherRepo.FindAllForCompany(ctx, companyID, shared.Unpaged())
		if err != nil {
			return nil, err
		}
		for i := range loans {
			events = append(events, chartEvent{loans[i].IssueDate, loans[i].Amount, false})
			if loans[i].Closure != nil {
				events = append(events, chartEvent{loans[i].Closure.Date, loans[i].Closure.NetAmount, true})
			}
		}
	default:
		loans, err := s.loanRepo.FindAllForCompany(ctx, companyID, shared.Unpaged())
		if err != nil {
			return nil, err
		}
		for i := range loans {
			events = append(events, chartEvent{loans[i].IssueDate, loans[i].LoanAmount, false})
			if loans[i].Closure != nil {
				events = append(events, chartEvent{loans[i].Closure.Date, loans[i].Closure.NetAmount, true})
			}
		}
		ledger = LedgerLoans
	}

	resp := &ChartSeriesResponse{
		Range:   r,
		Ledger:  ledger,
		Buckets: buildSeries(events, r, s.now()),
	}
	if err := s.cache.Set(ctx, cacheKey, resp, summaryCacheTTL); err != nil {
		s.logger.Warn("chart cache write failed", zap.Error(err))
	}
	return resp, nil
}

// ===================== shared helpers =====================

func (s *Service) customerNames(ctx context.Context, companyID uuid.UUID) (map[uuid.UUID]string, error) {
	customers, err := s.customerRepo.FindAllForCompany(ctx, companyID, shared.Unpaged())
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(customers))
	for i := range customers {
		names[customers[i].ID] = customers[i].FullName()
	}
	return names, nil
}

func (s *Service) schemesByID(ctx context.Context, companyID uuid.UUID) (map[uuid.UUID]*org.Scheme, error) {
	schemes, err := s.schemeRepo.FindAllForCompany(ctx, companyID, shared.Unpaged())
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*org.Scheme, len(schemes))
	for i := range schemes {
		byID[schemes[i].ID] = &schemes[i]
	}
	return byID, nil
}

// accrualInputFor assembles the accrual inputs from a loan snapshot. A
// missing scheme accrues at zero rather than failing the whole report.
func accrualInputFor(loan *lending.IssuedLoan, scheme *org.Scheme, tiers []org.PenaltyTier) lending.AccrualInput {
	in := lending.AccrualInput{
		Principal:           loan.InterestLoanAmount,
		IssueDate:           loan.IssueDate,
		NextInstallmentDate: loan.NextInstallmentDate,
		LastInstallmentDate: loan.LastInstallmentDate,
		CarryForward:        loan.CarryForward(),
		PenaltyTiers:        tiers,
		Closed:              loan.Status == lending.StatusClosed,
	}
	if scheme != nil {
		in.RatePercent = scheme.InterestRate
	}
	if last := loan.LastInterestEntry(); last != nil {
		to := last.To
		in.LastInterestTo = &to
		in.UchakPaidSince = loan.UchakPaidAfter(to)
	} else {
		in.UchakPaidSince = loan.UchakPaidAfter(loan.IssueDate)
	}
	return in
}
