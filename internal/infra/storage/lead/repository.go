package lead

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/jals-dev/JALS-LeadService/internal/domain"
	"github.com/jals-dev/JALS-LeadService/pkg/psqlbuilder"
	"github.com/jals-dev/JALS-LeadService/pkg/txmanager"
)

// leadColumns полный набор колонок таблицы leads в порядке сканирования
var leadColumns = []string{
	"id",
	"full_name",
	"email",
	"phone",
	"phone_country",
	"service_type",
	"budget_range",
	"timeframe",
	"project_description",
	"source",
	"status",
	"appointment_time",
	"appointment_status",
	"client_timezone",
	"preferred_contact_method",
	"reminder_24_sent",
	"reminder_1_sent",
	"reminder_15_sent",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с лидами и их записями на консультацию
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лидов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового лида (запись на консультацию еще не назначена)
func (r *Repository) Create(ctx context.Context, l *domain.Lead) (*domain.Lead, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("leads").
		Columns(
			"full_name",
			"email",
			"phone",
			"phone_country",
			"service_type",
			"budget_range",
			"timeframe",
			"project_description",
			"source",
			"status",
			"appointment_status",
			"preferred_contact_method",
		).
		Values(
			l.FullName,
			l.Email,
			l.Phone,
			l.PhoneCountry,
			l.ServiceType,
			l.BudgetRange,
			l.Timeframe,
			l.ProjectDescription,
			l.Source,
			l.Status,
			l.AppointmentStatus,
			l.PreferredContactMethod,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&l.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return l, nil
}

// GetByID получает лида по ID
// Внутри транзакции строка блокируется (FOR UPDATE) - это опора
// транзакции бронирования
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(leadColumns...).
		From("leads").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	l, err := scanLead(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("%w: GetByID - scan lead: %v", ErrScanRow, err)
	}

	return l, nil
}

// List получает постраничный список лидов с фильтрацией
// Возвращает страницу и общее количество строк под фильтром
func (r *Repository) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, int64, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	conds := filterConds(filter)

	countBuilder := psqlbuilder.Select("COUNT(*)").From("leads")
	for _, c := range conds {
		countBuilder = countBuilder.Where(c)
	}

	query, args, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - count leads: %v", ErrExecQuery, err)
	}

	offset := uint64((filter.Page - 1) * filter.Limit)

	selectBuilder := psqlbuilder.Select(leadColumns...).
		From("leads").
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(offset)
	for _, c := range conds {
		selectBuilder = selectBuilder.Where(c)
	}

	query, args, err = selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

// Update частично обновляет поля лида и возвращает обновленную строку
func (r *Repository) Update(ctx context.Context, id int64, upd domain.LeadUpdate) (*domain.Lead, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("leads").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.FullName != nil {
		updateBuilder = updateBuilder.Set("full_name", *upd.FullName)
	}
	if upd.Email != nil {
		updateBuilder = updateBuilder.Set("email", *upd.Email)
	}
	if upd.Phone != nil {
		updateBuilder = updateBuilder.Set("phone", *upd.Phone)
	}
	if upd.PhoneCountry != nil {
		updateBuilder = updateBuilder.Set("phone_country", *upd.PhoneCountry)
	}
	if upd.ServiceType != nil {
		updateBuilder = updateBuilder.Set("service_type", *upd.ServiceType)
	}
	if upd.BudgetRange != nil {
		updateBuilder = updateBuilder.Set("budget_range", *upd.BudgetRange)
	}
	if upd.Timeframe != nil {
		updateBuilder = updateBuilder.Set("timeframe", *upd.Timeframe)
	}
	if upd.ProjectDescription != nil {
		updateBuilder = updateBuilder.Set("project_description", *upd.ProjectDescription)
	}
	if upd.Source != nil {
		updateBuilder = updateBuilder.Set("source", *upd.Source)
	}
	if upd.Status != nil {
		updateBuilder = updateBuilder.Set("status", *upd.Status)
	}
	if upd.AppointmentStatus != nil {
		updateBuilder = updateBuilder.Set("appointment_status", *upd.AppointmentStatus)
	}
	if upd.ClientTimezone != nil {
		updateBuilder = updateBuilder.Set("client_timezone", *upd.ClientTimezone)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + joinColumns(leadColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	l, err := scanLead(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("%w: Update - scan lead: %v", ErrScanRow, err)
	}

	return l, nil
}

// UpdateBooking фиксирует бронирование: время и статус записи, таймзону
// клиента, способ связи, каноничный телефон и сброс флагов напоминаний.
// Вызывается только внутри транзакции бронирования
func (r *Repository) UpdateBooking(ctx context.Context, l *domain.Lead) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("leads").
		Set("phone", l.Phone).
		Set("phone_country", l.PhoneCountry).
		Set("appointment_time", l.AppointmentTime).
		Set("appointment_status", l.AppointmentStatus).
		Set("client_timezone", l.ClientTimezone).
		Set("preferred_contact_method", l.PreferredContactMethod).
		Set("reminder_24_sent", l.Reminder24Sent).
		Set("reminder_1_sent", l.Reminder1Sent).
		Set("reminder_15_sent", l.Reminder15Sent).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": l.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateBooking - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateBooking - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateBooking - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLeadNotFound
	}

	return nil
}

// FindActiveByIdentity ищет лида с активной записью по идентичности (email, phone)
// Email сравнивается без учета регистра, телефон - точно (уже E.164)
// Внутри транзакции найденная строка блокируется (FOR UPDATE)
func (r *Repository) FindActiveByIdentity(ctx context.Context, email, phone string, now time.Time) (*domain.Lead, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(leadColumns...).
		From("leads").
		Where(squirrel.Expr("LOWER(email) = LOWER(?)", email)).
		Where(squirrel.Eq{"phone": phone}).
		Where(squirrel.Eq{"appointment_status": takenStatusStrings()}).
		Where(squirrel.Gt{"appointment_time": now}).
		OrderBy("appointment_time ASC").
		Limit(1)

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveByIdentity - build select query: %v", ErrBuildQuery, err)
	}

	l, err := scanLead(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("%w: FindActiveByIdentity - scan lead: %v", ErrScanRow, err)
	}

	return l, nil
}

// FindBookedAt ищет лида, занимающего слот ровно в указанный момент
// Внутри транзакции найденная строка блокируется (FOR UPDATE)
func (r *Repository) FindBookedAt(ctx context.Context, instant time.Time) (*domain.Lead, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(leadColumns...).
		From("leads").
		Where(squirrel.Eq{"appointment_time": instant}).
		Where(squirrel.Eq{"appointment_status": takenStatusStrings()}).
		Limit(1)

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindBookedAt - build select query: %v", ErrBuildQuery, err)
	}

	l, err := scanLead(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("%w: FindBookedAt - scan lead: %v", ErrScanRow, err)
	}

	return l, nil
}

// GetBookedTimes получает занятые моменты записей в интервале [from, to]
// Используется генератором слотов для исключения занятых позиций сетки
func (r *Repository) GetBookedTimes(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("appointment_time").
		From("leads").
		Where(squirrel.Eq{"appointment_status": takenStatusStrings()}).
		Where(squirrel.GtOrEq{"appointment_time": from}).
		Where(squirrel.LtOrEq{"appointment_time": to}).
		OrderBy("appointment_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]time.Time, 0)
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: GetBookedTimes - scan appointment_time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// ListPendingReminders получает лидов с будущей активной записью,
// у которых хотя бы одно напоминание еще не отправлено
func (r *Repository) ListPendingReminders(ctx context.Context, now time.Time) ([]*domain.Lead, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(leadColumns...).
		From("leads").
		Where(squirrel.Eq{"appointment_status": takenStatusStrings()}).
		Where(squirrel.Gt{"appointment_time": now}).
		Where(squirrel.Or{
			squirrel.Eq{"reminder_24_sent": false},
			squirrel.Eq{"reminder_1_sent": false},
			squirrel.Eq{"reminder_15_sent": false},
		}).
		OrderBy("appointment_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanLeads(rows)
}

// SetReminderFlag выставляет флаг отправленного напоминания
// Имя колонки берется только из доменного перечисления (защита от инъекций)
func (r *Repository) SetReminderFlag(ctx context.Context, id int64, flag domain.ReminderFlagName) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	switch flag {
	case domain.ReminderFlag24, domain.ReminderFlag1, domain.ReminderFlag15:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownReminderFlag, flag)
	}

	query, args, err := psqlbuilder.Update("leads").
		Set(string(flag), true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetReminderFlag - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetReminderFlag - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetReminderFlag - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrLeadNotFound
	}

	return nil
}

// Summary собирает сводную статистику для дашборда
func (r *Repository) Summary(ctx context.Context, since time.Time) (*domain.LeadSummary, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("leads").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - build total query: %v", ErrBuildQuery, err)
	}

	summary := &domain.LeadSummary{ByStatus: make(map[domain.LeadStatus]int64, len(domain.LeadStatuses))}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&summary.TotalLeads); err != nil {
		return nil, fmt.Errorf("%w: Summary - count total: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Select("COUNT(*)").
		From("leads").
		Where(squirrel.GtOrEq{"created_at": since}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - build recent query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&summary.NewThisWeek); err != nil {
		return nil, fmt.Errorf("%w: Summary - count recent: %v", ErrExecQuery, err)
	}

	query, args, err = psqlbuilder.Select("status", "COUNT(*)").
		From("leads").
		GroupBy("status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - build status query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - count by status: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for _, s := range domain.LeadStatuses {
		summary.ByStatus[s] = 0
	}

	for rows.Next() {
		var status domain.LeadStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%w: Summary - scan status count: %v", ErrScanRow, err)
		}
		summary.ByStatus[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Summary - rows error: %v", ErrScanRow, err)
	}

	return summary, nil
}

// filterConds собирает WHERE-условия из фильтра списка лидов
func filterConds(filter domain.LeadFilter) []squirrel.Sqlizer {
	conds := make([]squirrel.Sqlizer, 0, 2)

	if filter.Status != nil {
		conds = append(conds, squirrel.Eq{"status": *filter.Status})
	}

	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"full_name": pattern},
			squirrel.ILike{"email": pattern},
			squirrel.ILike{"service_type": pattern},
		})
	}

	return conds
}

func takenStatusStrings() []string {
	statuses := make([]string, len(domain.AppointmentTakenStatuses))
	for i, s := range domain.AppointmentTakenStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func joinColumns(cols []string) string {
	out := cols[0]
	for _, c := range cols[1:] {
		out += ", " + c
	}
	return out
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanLead сканирует одну строку в domain.Lead (порядок = leadColumns)
func scanLead(row rowScanner) (*domain.Lead, error) {
	var l domain.Lead
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&l.ID,
		&l.FullName,
		&l.Email,
		&l.Phone,
		&l.PhoneCountry,
		&l.ServiceType,
		&l.BudgetRange,
		&l.Timeframe,
		&l.ProjectDescription,
		&l.Source,
		&l.Status,
		&l.AppointmentTime,
		&l.AppointmentStatus,
		&l.ClientTimezone,
		&l.PreferredContactMethod,
		&l.Reminder24Sent,
		&l.Reminder1Sent,
		&l.Reminder15Sent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return &l, nil
}

// scanLeads сканирует результат запроса в слайс лидов
func scanLeads(rows *sql.Rows) ([]*domain.Lead, error) {
	leads := make([]*domain.Lead, 0)

	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanLeads - scan row: %v", ErrScanRow, err)
		}
		leads = append(leads, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanLeads - rows error: %v", ErrScanRow, err)
	}

	return leads, nil
}
