package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

// ErrReportNotFound is returned when a report lookup yields no results.
var ErrReportNotFound = errors.New("battle report not found")

// ErrReportExists is returned when a report with the same ID is already stored.
var ErrReportExists = errors.New("battle report already exists")

// ErrUndecidedReport is returned when storing a battle that has not concluded.
var ErrUndecidedReport = errors.New("battle report has no outcome")

// Report is a persisted battle result.
type Report struct {
	ID         uuid.UUID
	Seed       int64
	Stage      int
	Outcome    combat.Outcome
	Rounds     int
	Transcript []combat.Round
	Allies     []combat.Snapshot
	Enemies    []combat.Snapshot
	CreatedAt  time.Time
}

// NewReport builds a Report from a concluded battle. stage is 0 for ad-hoc battles.
func NewReport(res combat.Result, seed int64, stage int) Report {
	return Report{
		ID:         res.ID,
		Seed:       seed,
		Stage:      stage,
		Outcome:    res.Outcome,
		Rounds:     res.Rounds,
		Transcript: res.Transcript,
		Allies:     res.Allies,
		Enemies:    res.Enemies,
	}
}

// OutcomeCounts tallies stored reports by outcome.
type OutcomeCounts map[combat.Outcome]int

// ReportRepository provides battle report persistence operations.
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a ReportRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

const reportColumns = `id, seed, stage, outcome, rounds, transcript, allies, enemies, created_at`

// Create inserts rep.
//
// Precondition: rep.Outcome must not be Undecided.
// Postcondition: Returns rep with CreatedAt set, ErrReportExists if the ID is
// taken, or ErrUndecidedReport.
func (r *ReportRepository) Create(ctx context.Context, rep Report) (Report, error) {
	if rep.Outcome == combat.Undecided {
		return Report{}, ErrUndecidedReport
	}
	transcript, allies, enemies, err := encodeReport(rep)
	if err != nil {
		return Report{}, err
	}

	err = r.db.QueryRow(ctx,
		`INSERT INTO battle_reports (id, seed, stage, outcome, rounds, transcript, allies, enemies)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		rep.ID, rep.Seed, rep.Stage, rep.Outcome.String(), rep.Rounds, transcript, allies, enemies,
	).Scan(&rep.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return Report{}, ErrReportExists
		}
		return Report{}, fmt.Errorf("inserting battle report: %w", err)
	}
	return rep, nil
}

// Get retrieves a report by ID.
//
// Postcondition: Returns the Report or ErrReportNotFound.
func (r *ReportRepository) Get(ctx context.Context, id uuid.UUID) (Report, error) {
	rep, err := scanReport(r.db.QueryRow(ctx,
		`SELECT `+reportColumns+` FROM battle_reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Report{}, ErrReportNotFound
		}
		return Report{}, fmt.Errorf("querying battle report %s: %w", id, err)
	}
	return rep, nil
}

// ListRecent returns up to limit reports, newest first.
//
// Precondition: limit > 0.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]Report, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("listing battle reports: limit must be > 0, got %d", limit)
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+reportColumns+` FROM battle_reports ORDER BY created_at DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing battle reports: %w", err)
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning battle report: %w", err)
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating battle reports: %w", err)
	}
	return out, nil
}

// CountByOutcome tallies every stored report by outcome.
func (r *ReportRepository) CountByOutcome(ctx context.Context) (OutcomeCounts, error) {
	rows, err := r.db.Query(ctx, `SELECT outcome, COUNT(*) FROM battle_reports GROUP BY outcome`)
	if err != nil {
		return nil, fmt.Errorf("counting battle reports: %w", err)
	}
	defer rows.Close()

	counts := OutcomeCounts{}
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("scanning outcome count: %w", err)
		}
		o, err := combat.ParseOutcome(label)
		if err != nil {
			return nil, err
		}
		counts[o] = n
	}
	return counts, rows.Err()
}

func encodeReport(rep Report) (transcript, allies, enemies []byte, err error) {
	if transcript, err = json.Marshal(rep.Transcript); err != nil {
		return nil, nil, nil, fmt.Errorf("encoding transcript: %w", err)
	}
	if allies, err = json.Marshal(rep.Allies); err != nil {
		return nil, nil, nil, fmt.Errorf("encoding allies: %w", err)
	}
	if enemies, err = json.Marshal(rep.Enemies); err != nil {
		return nil, nil, nil, fmt.Errorf("encoding enemies: %w", err)
	}
	return transcript, allies, enemies, nil
}

func scanReport(row pgx.Row) (Report, error) {
	var rep Report
	var outcome string
	var transcript, allies, enemies []byte
	if err := row.Scan(&rep.ID, &rep.Seed, &rep.Stage, &outcome, &rep.Rounds,
		&transcript, &allies, &enemies, &rep.CreatedAt); err != nil {
		return Report{}, err
	}
	return decodeReport(rep, outcome, transcript, allies, enemies)
}

func decodeReport(rep Report, outcome string, transcript, allies, enemies []byte) (Report, error) {
	o, err := combat.ParseOutcome(outcome)
	if err != nil {
		return Report{}, fmt.Errorf("decoding report %s: %w", rep.ID, err)
	}
	rep.Outcome = o
	if err := json.Unmarshal(transcript, &rep.Transcript); err != nil {
		return Report{}, fmt.Errorf("decoding transcript of %s: %w", rep.ID, err)
	}
	if err := json.Unmarshal(allies, &rep.Allies); err != nil {
		return Report{}, fmt.Errorf("decoding allies of %s: %w", rep.ID, err)
	}
	if err := json.Unmarshal(enemies, &rep.Enemies); err != nil {
		return Report{}, fmt.Errorf("decoding enemies of %s: %w", rep.ID, err)
	}
	return rep, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
