package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	amodel "attendly_backend/internals/features/school/attendance/model"
	sesmodel "attendly_backend/internals/features/school/sessions/model"
	smodel "attendly_backend/internals/features/school/students/model"
)

// RosterResolver turns a session's declared (program, year, section) target
// into the list of students expected to attend, merged with whatever
// attendance has already been recorded for the session.
//
// Sections are free-form strings typed by different offices, so an exact
// match can miss students that are obviously in the section ("BPED 1D" vs
// "1D", stray spaces, case). When the exact query comes back empty the
// resolver walks a fixed ladder of looser matches instead of returning an
// empty roster.

var ErrSessionNotFound = errors.New("session not found")

// Page size for the exhaustive fetch. The hosted store the original system
// ran on capped a single response at 1000 rows; fetching in fixed pages until
// a short page shows up avoids silently undercounting large populations.
const rosterPageSize = 1000

// Phrases the session forms use for "no constraint". Substring "all" below
// already covers these; the set documents the known values.
var allPhrases = map[string]struct{}{
	"all programs":    {},
	"all year levels": {},
	"all sections":    {},
}

// IsAllValue reports whether a session filter field means "apply no
// constraint": empty after trimming, one of the known phrases, or any value
// containing "all" case-insensitively.
func IsAllValue(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return true
	}
	if _, ok := allPhrases[v]; ok {
		return true
	}
	return strings.Contains(v, "all")
}

// NormalizeYear strips the trailing " Year" suffix sessions carry but
// student records don't ("1st Year" → "1st").
func NormalizeYear(s string) string {
	v := strings.TrimSpace(s)
	low := strings.ToLower(v)
	if strings.HasSuffix(low, " year") {
		v = strings.TrimSpace(v[:len(v)-len(" year")])
	}
	return v
}

// SectionVariants returns the ordered list of section-string normalizations
// tried by the fallback ladder: original, trimmed, space-collapsed,
// upper-cased, lower-cased, space-stripped, and the trailing token
// ("BPED 1D" → "1D"). Duplicates are dropped, order preserved.
func SectionVariants(s string) []string {
	trimmed := strings.TrimSpace(s)
	collapsed := strings.Join(strings.Fields(trimmed), " ")
	variants := []string{
		s,
		trimmed,
		collapsed,
		strings.ToUpper(trimmed),
		strings.ToLower(trimmed),
		strings.ReplaceAll(trimmed, " ", ""),
	}
	if fields := strings.Fields(trimmed); len(fields) > 1 {
		variants = append(variants, fields[len(fields)-1])
	}

	seen := make(map[string]struct{}, len(variants))
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

/* =========================================================
 * Student fetching
 * ========================================================= */

// StudentFilter is one rung of the ladder. Nil fields are unconstrained;
// Section is equality, SectionLike a substring match (at most one is set).
type StudentFilter struct {
	Program     *string
	Year        *string
	Section     *string
	SectionLike *string
}

// StudentPager fetches one page of students matching a filter. The GORM
// implementation is the only one in production; tests substitute an
// in-memory one.
type StudentPager interface {
	FetchStudents(ctx context.Context, f StudentFilter, offset, limit int) ([]smodel.StudentModel, error)
}

type gormStudentPager struct {
	db *gorm.DB
}

func (g gormStudentPager) FetchStudents(ctx context.Context, f StudentFilter, offset, limit int) ([]smodel.StudentModel, error) {
	q := g.db.WithContext(ctx).Model(&smodel.StudentModel{})
	if f.Program != nil {
		q = q.Where("student_program = ?", *f.Program)
	}
	if f.Year != nil {
		q = q.Where("student_year = ?", *f.Year)
	}
	if f.Section != nil {
		q = q.Where("student_section = ?", *f.Section)
	}
	if f.SectionLike != nil {
		q = q.Where("student_section ILIKE ?", "%"+*f.SectionLike+"%")
	}

	var rows []smodel.StudentModel
	// stable page order so the exhaustive fetch never skips rows
	if err := q.Order("student_id").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

/* =========================================================
 * Resolver
 * ========================================================= */

type RosterEntry struct {
	Student    smodel.StudentModel
	Attendance *amodel.AttendanceModel // nil when nothing recorded yet
}

type RosterResolver struct {
	db    *gorm.DB
	pager StudentPager
}

func NewRosterResolver(db *gorm.DB) *RosterResolver {
	return &RosterResolver{db: db, pager: gormStudentPager{db: db}}
}

// NewRosterResolverWithPager is for tests.
func NewRosterResolverWithPager(db *gorm.DB, pager StudentPager) *RosterResolver {
	return &RosterResolver{db: db, pager: pager}
}

// ResolveForSession loads the session, resolves its target students and
// left-merges recorded attendance. Read-only; safe to call concurrently.
func (r *RosterResolver) ResolveForSession(ctx context.Context, sessionID string) ([]RosterEntry, error) {
	var sess sesmodel.SessionModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Take(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
		}
		return nil, err
	}

	students, err := r.ResolveStudents(ctx, sess.SessionProgram, sess.SessionYear, sess.SessionSection)
	if err != nil {
		return nil, err
	}

	var marks []amodel.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("attendance_session_id = ?", sess.SessionID).
		Find(&marks).Error; err != nil {
		return nil, err
	}

	return MergeRoster(students, marks), nil
}

// ResolveStudents runs the filter + fallback ladder for a raw
// (program, year, section) triple.
func (r *RosterResolver) ResolveStudents(ctx context.Context, program, year, section string) ([]smodel.StudentModel, error) {
	var prog, yr *string
	if !IsAllValue(program) {
		p := strings.TrimSpace(program)
		prog = &p
	}
	if !IsAllValue(year) {
		y := NormalizeYear(year)
		yr = &y
	}

	if IsAllValue(section) {
		return r.fetchAll(ctx, StudentFilter{Program: prog, Year: yr})
	}

	// 1) exact section
	sec := strings.TrimSpace(section)
	rows, err := r.fetchAll(ctx, StudentFilter{Program: prog, Year: yr, Section: &sec})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}

	variants := SectionVariants(section)

	// 2) normalized variants, exact match
	for i := range variants {
		v := variants[i]
		rows, err = r.fetchAll(ctx, StudentFilter{Program: prog, Year: yr, Section: &v})
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}

	// 3) normalized variants, substring match
	for i := range variants {
		v := variants[i]
		rows, err = r.fetchAll(ctx, StudentFilter{Program: prog, Year: yr, SectionLike: &v})
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			return rows, nil
		}
	}

	// 4) drop the section constraint entirely
	rows, err = r.fetchAll(ctx, StudentFilter{Program: prog, Year: yr})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}

	// 5) program only
	if prog != nil && yr != nil {
		rows, err = r.fetchAll(ctx, StudentFilter{Program: prog})
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

// fetchAll materializes the full result set in fixed pages, stopping at the
// first short page.
func (r *RosterResolver) fetchAll(ctx context.Context, f StudentFilter) ([]smodel.StudentModel, error) {
	var all []smodel.StudentModel
	offset := 0
	for {
		page, err := r.pager.FetchStudents(ctx, f, offset, rosterPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < rosterPageSize {
			return all, nil
		}
		offset += rosterPageSize
	}
}

/* =========================================================
 * Merge & sort
 * ========================================================= */

// MergeRoster left-joins attendance onto students by student id and sorts by
// (surname, firstname) ascending with a case-insensitive locale collation.
func MergeRoster(students []smodel.StudentModel, marks []amodel.AttendanceModel) []RosterEntry {
	byStudent := make(map[string]*amodel.AttendanceModel, len(marks))
	for i := range marks {
		byStudent[marks[i].AttendanceStudentID.String()] = &marks[i]
	}

	entries := make([]RosterEntry, 0, len(students))
	for _, s := range students {
		entries = append(entries, RosterEntry{
			Student:    s,
			Attendance: byStudent[s.StudentID.String()],
		})
	}

	// collators are not safe for concurrent use, so build one per call
	coll := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Student, entries[j].Student
		if c := coll.CompareString(a.StudentSurname, b.StudentSurname); c != 0 {
			return c < 0
		}
		return coll.CompareString(a.StudentFirstname, b.StudentFirstname) < 0
	})
	return entries
}
