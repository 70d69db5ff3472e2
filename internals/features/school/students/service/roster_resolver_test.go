package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	amodel "attendly_backend/internals/features/school/attendance/model"
	smodel "attendly_backend/internals/features/school/students/model"
)

/* =========================================================
 * In-memory pager
 * ========================================================= */

type memPager struct {
	students []smodel.StudentModel
	calls    int
}

func (p *memPager) FetchStudents(_ context.Context, f StudentFilter, offset, limit int) ([]smodel.StudentModel, error) {
	p.calls++
	var matched []smodel.StudentModel
	for _, s := range p.students {
		if f.Program != nil && s.StudentProgram != *f.Program {
			continue
		}
		if f.Year != nil && s.StudentYear != *f.Year {
			continue
		}
		if f.Section != nil && s.StudentSection != *f.Section {
			continue
		}
		if f.SectionLike != nil &&
			!strings.Contains(strings.ToLower(s.StudentSection), strings.ToLower(*f.SectionLike)) {
			continue
		}
		matched = append(matched, s)
	}
	if offset >= len(matched) {
		return nil, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func student(code, surname, firstname, program, year, section string) smodel.StudentModel {
	return smodel.StudentModel{
		StudentID:        uuid.New(),
		StudentCode:      code,
		StudentSurname:   surname,
		StudentFirstname: firstname,
		StudentProgram:   program,
		StudentYear:      year,
		StudentSection:   section,
	}
}

func resolverWith(students ...smodel.StudentModel) (*RosterResolver, *memPager) {
	p := &memPager{students: students}
	return NewRosterResolverWithPager(nil, p), p
}

/* =========================================================
 * Wildcard / normalization units
 * ========================================================= */

func TestIsAllValue(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"All Programs", true},
		{"all year levels", true},
		{"ALL SECTIONS", true},
		{"All", true},
		{"  aLl  ", true},
		{"Computer Science", false},
		{"1st", false},
		{"A", false},
		{"BPED 1D", false},
	}
	for _, tc := range cases {
		if got := IsAllValue(tc.in); got != tc.want {
			t.Errorf("IsAllValue(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeYear(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1st Year", "1st"},
		{"1st year", "1st"},
		{"2nd Year ", "2nd"},
		{"  3rd YEAR", "3rd"},
		{"4th", "4th"},
		{"Yearling", "Yearling"}, // suffix only, not substring
	}
	for _, tc := range cases {
		if got := NormalizeYear(tc.in); got != tc.want {
			t.Errorf("NormalizeYear(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSectionVariants(t *testing.T) {
	got := SectionVariants("  BPED  1D ")
	// upper of the trimmed form equals the trimmed form here, so it dedupes
	want := []string{"  BPED  1D ", "BPED  1D", "BPED 1D", "bped  1d", "BPED1D", "1D"}
	if len(got) != len(want) {
		t.Fatalf("SectionVariants = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SectionVariants[%d] = %q, want %q (all: %q)", i, got[i], want[i], got)
		}
	}
}

func TestSectionVariantsNoDuplicates(t *testing.T) {
	got := SectionVariants("A")
	seen := map[string]bool{}
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate variant %q in %q", v, got)
		}
		seen[v] = true
	}
	if got[0] != "A" {
		t.Fatalf("first variant should be the original, got %q", got[0])
	}
}

/* =========================================================
 * Resolution ladder
 * ========================================================= */

func TestResolveStudentsAllWildcardsReturnsEveryone(t *testing.T) {
	r, _ := resolverWith(
		student("s1", "Reyes", "Ana", "Computer Science", "1st", "A"),
		student("s2", "Cruz", "Ben", "BPED", "2nd", "1D"),
		student("s3", "Lim", "Cara", "Nursing", "4th", "C"),
	)
	got, err := r.ResolveStudents(context.Background(), "All Programs", "All Year Levels", "All Sections")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("want full table (3), got %d", len(got))
	}
}

func TestResolveStudentsYearSuffixStripping(t *testing.T) {
	r, _ := resolverWith(
		student("s1", "Reyes", "Ana", "Computer Science", "1st", "A"),
		student("s2", "Cruz", "Ben", "Computer Science", "2nd", "A"),
	)
	got, err := r.ResolveStudents(context.Background(), "Computer Science", "1st Year", "A")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].StudentCode != "s1" {
		t.Fatalf("want [s1], got %v", codes(got))
	}
}

func TestResolveStudentsExactSectionWins(t *testing.T) {
	r, p := resolverWith(
		student("s1", "Reyes", "Ana", "BPED", "1st", "1D"),
		student("s2", "Cruz", "Ben", "BPED", "1st", "BPED 1D"),
	)
	got, err := r.ResolveStudents(context.Background(), "BPED", "1st", "1D")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].StudentCode != "s1" {
		t.Fatalf("want exact match [s1], got %v", codes(got))
	}
	if p.calls != 1 {
		t.Fatalf("exact hit should not trigger fallbacks, pager called %d times", p.calls)
	}
}

func TestResolveStudentsNormalizedSectionFallback(t *testing.T) {
	// session stores a sloppy section string, students store the clean one
	r, _ := resolverWith(
		student("s1", "Reyes", "Ana", "BPED", "1st", "BPED 1D"),
	)
	got, err := r.ResolveStudents(context.Background(), "BPED", "1st", "  bped  1d ")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].StudentCode != "s1" {
		t.Fatalf("normalized fallback should find s1, got %v", codes(got))
	}
}

func TestResolveStudentsTrailingTokenFallback(t *testing.T) {
	// session says "BPED 1D", students keep just "1D"
	r, _ := resolverWith(
		student("s1", "Reyes", "Ana", "BPED", "1st", "1D"),
	)
	got, err := r.ResolveStudents(context.Background(), "BPED", "1st", "BPED 1D")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("trailing-token fallback should find s1, got %v", codes(got))
	}
}

func TestResolveStudentsSubstringFallback(t *testing.T) {
	// session keeps the short form, students the long one; only the substring
	// rung can bridge "1D" → "BPED 1D"
	r, _ := resolverWith(
		student("s1", "Reyes", "Ana", "BPED", "1st", "BPED 1D"),
	)
	got, err := r.ResolveStudents(context.Background(), "BPED", "1st", "1D")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("substring fallback should find s1, got %v", codes(got))
	}
}

func TestResolveStudentsFallsBackToProgramYear(t *testing.T) {
	r, _ := resolverWith(
		student("s1", "Reyes", "Ana", "Nursing", "2nd", "B"),
		student("s2", "Cruz", "Ben", "Nursing", "2nd", "C"),
		student("s3", "Lim", "Cara", "Nursing", "3rd", "Z"),
	)
	got, err := r.ResolveStudents(context.Background(), "Nursing", "2nd Year", "Z")
	if err != nil {
		t.Fatal(err)
	}
	// no 2nd-year student is in "Z", so the ladder widens to program+year
	if len(got) != 2 {
		t.Fatalf("want program+year fallback (2 students), got %v", codes(got))
	}
}

func TestResolveStudentsFallsBackToProgramOnly(t *testing.T) {
	r, _ := resolverWith(
		student("s1", "Reyes", "Ana", "Nursing", "2nd", "B"),
	)
	got, err := r.ResolveStudents(context.Background(), "Nursing", "9th Year", "Z")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].StudentCode != "s1" {
		t.Fatalf("want program-only fallback [s1], got %v", codes(got))
	}
}

func TestResolveStudentsEmptyWhenNothingMatches(t *testing.T) {
	r, _ := resolverWith(
		student("s1", "Reyes", "Ana", "Nursing", "2nd", "B"),
	)
	got, err := r.ResolveStudents(context.Background(), "Astrophysics", "9th Year", "Z")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("want empty roster, got %v", codes(got))
	}
}

func TestResolveStudentsExhaustivePagination(t *testing.T) {
	var all []smodel.StudentModel
	for i := 0; i < 2*rosterPageSize+137; i++ {
		all = append(all, student(fmt.Sprintf("s%04d", i), "Santos", "Maria", "Education", "1st", "A"))
	}
	r, p := resolverWith(all...)
	got, err := r.ResolveStudents(context.Background(), "Education", "1st Year", "A")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(all) {
		t.Fatalf("pagination undercounted: want %d, got %d", len(all), len(got))
	}
	if p.calls != 3 {
		t.Fatalf("want 3 page fetches, got %d", p.calls)
	}
}

/* =========================================================
 * Merge & sort
 * ========================================================= */

func TestMergeRosterLeftJoinAndSort(t *testing.T) {
	a := student("s1", "dela Cruz", "Juan", "CS", "1st", "A")
	b := student("s2", "Abad", "Zoe", "CS", "1st", "A")
	c := student("s3", "Abad", "Amy", "CS", "1st", "A")

	now := time.Now()
	marks := []amodel.AttendanceModel{
		{
			AttendanceSessionID: uuid.New(),
			AttendanceStudentID: a.StudentID,
			AttendanceStatus:    amodel.StatusPresent,
			AttendanceTimeIn:    &now,
		},
	}

	entries := MergeRoster([]smodel.StudentModel{a, b, c}, marks)
	if len(entries) != 3 {
		t.Fatalf("want 3 entries, got %d", len(entries))
	}

	// case-insensitive sort: Abad Amy, Abad Zoe, dela Cruz Juan
	order := []string{"s3", "s2", "s1"}
	for i, want := range order {
		if entries[i].Student.StudentCode != want {
			t.Fatalf("sort order wrong at %d: got %s, want %s", i, entries[i].Student.StudentCode, want)
		}
	}

	for _, e := range entries {
		switch e.Student.StudentCode {
		case "s1":
			if e.Attendance == nil || e.Attendance.AttendanceStatus != amodel.StatusPresent {
				t.Fatal("s1 should carry its attendance mark")
			}
		default:
			if e.Attendance != nil {
				t.Fatalf("%s has no mark and should surface nil", e.Student.StudentCode)
			}
		}
	}
}

func codes(students []smodel.StudentModel) []string {
	out := make([]string, 0, len(students))
	for _, s := range students {
		out = append(out, s.StudentCode)
	}
	return out
}
