package domain

import (
	"cmp"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
)

func (s SeatStatus) Valid() bool {
	return s == SeatAvailable || s == SeatBooked
}

type OwnerKind string

const (
	OwnerMovie OwnerKind = "movie"
	OwnerShow  OwnerKind = "show"
)

// SeatOwner identifies the seat set a booking draws from: the flat layout of a
// movie or the grid of one show.
type SeatOwner struct {
	Kind OwnerKind
	ID   int
}

func MovieOwner(movieID int) SeatOwner {
	return SeatOwner{Kind: OwnerMovie, ID: movieID}
}

func ShowOwner(showID int) SeatOwner {
	return SeatOwner{Kind: OwnerShow, ID: showID}
}

// OwnerOf picks the show seats when a show id is present and falls back to the
// movie seats otherwise.
func OwnerOf(movieID int, showID *int) SeatOwner {
	if showID != nil && *showID > 0 {
		return ShowOwner(*showID)
	}

	return MovieOwner(movieID)
}

func (o SeatOwner) String() string {
	return fmt.Sprintf("%s:%d", o.Kind, o.ID)
}

type Seat struct {
	ID     int
	Number string
	Status SeatStatus
}

// RowSpec describes an inclusive range of row letters with the same number of
// seats per row.
type RowSpec struct {
	From        string
	To          string
	SeatsPerRow int
}

var (
	seatNumberRgx = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

	// DefaultMovieRowSpecs is the layout generated for every new movie.
	DefaultMovieRowSpecs = []RowSpec{
		{From: "A", To: "C", SeatsPerRow: 12}, // classic
		{From: "D", To: "G", SeatsPerRow: 12}, // prime
	}
)

const MaxGridRows = 26

func (r RowSpec) Validate() error {
	if !isRowLetter(r.From) || !isRowLetter(r.To) {
		return fmt.Errorf("%w: row letters must be single letters A-Z", ErrInvalidRowSpec)
	}
	if r.From > r.To {
		return fmt.Errorf("%w: row %s comes after row %s", ErrInvalidRowSpec, r.From, r.To)
	}
	if r.SeatsPerRow < 1 {
		return fmt.Errorf("%w: seats per row must be positive", ErrInvalidRowSpec)
	}

	return nil
}

func isRowLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}

// GridRowSpecs projects a rows x cols screen onto row letters A..A+rows-1.
func GridRowSpecs(rows, cols int) []RowSpec {
	if rows < 1 || cols < 1 {
		return nil
	}

	rows = min(rows, MaxGridRows)

	return []RowSpec{{
		From:        "A",
		To:          string(rune('A' + rows - 1)),
		SeatsPerRow: cols,
	}}
}

// GenerateSeatNumbers expands row specs into seat labels. Overlapping specs
// produce each label once.
func GenerateSeatNumbers(specs []RowSpec) ([]string, error) {
	seen := make(map[string]struct{})
	numbers := make([]string, 0)

	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}

		for row := spec.From[0]; row <= spec.To[0]; row++ {
			for col := 1; col <= spec.SeatsPerRow; col++ {
				label := fmt.Sprintf("%c%d", row, col)
				if _, ok := seen[label]; ok {
					continue
				}

				seen[label] = struct{}{}
				numbers = append(numbers, label)
			}
		}
	}

	return numbers, nil
}

func ValidSeatNumber(s string) bool {
	return seatNumberRgx.MatchString(s)
}

// ParseSeatList splits a comma separated seat string, trims each entry and
// drops empty and repeated ones while keeping the original order.
func ParseSeatList(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	seats := make([]string, 0, len(parts))

	for _, part := range parts {
		seat := strings.TrimSpace(part)
		if seat == "" {
			continue
		}
		if _, ok := seen[seat]; ok {
			continue
		}

		seen[seat] = struct{}{}
		seats = append(seats, seat)
	}

	return seats
}

func JoinSeatList(seats []string) string {
	return strings.Join(seats, ",")
}

// CompareSeatNumbers orders labels by row letters and then by numeric seat
// number, so A2 sorts before A10. Malformed labels sort after well formed ones.
func CompareSeatNumbers(a, b string) int {
	ma := seatNumberRgx.FindStringSubmatch(a)
	mb := seatNumberRgx.FindStringSubmatch(b)

	switch {
	case ma == nil && mb == nil:
		return strings.Compare(a, b)
	case ma == nil:
		return 1
	case mb == nil:
		return -1
	}

	rowA, rowB := strings.ToUpper(ma[1]), strings.ToUpper(mb[1])
	if c := cmp.Compare(len(rowA), len(rowB)); c != 0 {
		return c
	}
	if c := strings.Compare(rowA, rowB); c != 0 {
		return c
	}

	numA, _ := strconv.Atoi(ma[2])
	numB, _ := strconv.Atoi(mb[2])

	return cmp.Compare(numA, numB)
}

type SeatRepository interface {
	List(ctx context.Context, owner SeatOwner) ([]Seat, error)
	Generate(ctx context.Context, owner SeatOwner, specs []RowSpec) (int, error)
	SetStatus(ctx context.Context, owner SeatOwner, seatNumbers []string, status SeatStatus) (int, error)
	ResetAll(ctx context.Context, owner SeatOwner) (int, error)
}
