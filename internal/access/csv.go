package access

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"vehicle-access-control/internal/storage"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSV vehicle roster import

// Definition of column names in a vehicle roster CSV
type RosterDefinition struct {
	PlateField    string
	ProvinceField string
	TypeField     string
	BrandField    string
	ColorField    string
	ResidentField string

	Language string // Language code, e.g. "en", "th"
}

// Known column names in roster exports, in different languages.
// Estate management offices export these from their own systems, so
// header spelling varies per vendor.
var RosterDefinitions = []RosterDefinition{
	// English roster definition
	{
		PlateField:    "LICENSE PLATE",
		ProvinceField: "PROVINCE",
		TypeField:     "VEHICLE TYPE",
		BrandField:    "BRAND",
		ColorField:    "COLOR",
		ResidentField: "RESIDENT ID",
		Language:      "en",
	},

	// Thai roster definition
	{
		PlateField:    "ทะเบียนรถ",
		ProvinceField: "จังหวัด",
		TypeField:     "ประเภทรถ",
		BrandField:    "ยี่ห้อ",
		ColorField:    "สี",
		ResidentField: "รหัสผู้พักอาศัย",
		Language:      "th",
	},
}

type RosterFile struct {
	Definition RosterDefinition
	HeaderMap  map[string]int
	*csv.Reader
}

// OpenRoster opens a roster CSV, detects its encoding and matches the
// header row against the known column definitions.
func OpenRoster(path string) (*RosterFile, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %w", err)
	}

	reader, err := newDecodedReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	reader.LazyQuotes = true
	reader.FieldsPerRecord = 0

	headers, err := reader.Read()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	headerMap := make(map[string]int)
	for i, h := range headers {
		headerMap[strings.TrimSpace(h)] = i
	}

	for _, def := range RosterDefinitions {
		if matchDefinition(headerMap, def) {
			roster := &RosterFile{
				Definition: def,
				HeaderMap:  headerMap,
				Reader:     reader,
			}
			return roster, f.Close, nil
		}
	}

	f.Close()
	return nil, nil, fmt.Errorf("CSV file missing required columns")
}

func matchDefinition(headerMap map[string]int, def RosterDefinition) bool {
	for _, field := range []string{
		def.PlateField, def.ProvinceField, def.TypeField,
		def.BrandField, def.ColorField, def.ResidentField,
	} {
		if _, ok := headerMap[field]; !ok {
			return false
		}
	}
	return true
}

// newDecodedReader wraps the file in a UTF-16 decoder when a BOM is
// present. Spreadsheet exports on Windows are commonly UTF-16 with BOM.
func newDecodedReader(f *os.File) (*csv.Reader, error) {
	bom := make([]byte, 2)
	n, err := f.Read(bom)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read BOM: %w", err)
	}

	if n == 2 && (bom[0] == 0xFE && bom[1] == 0xFF || bom[0] == 0xFF && bom[1] == 0xFE) {
		utf16bom := unicode.BOMOverride(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
		decoded := transform.NewReader(io.MultiReader(
			// Prepend BOM bytes back to stream
			strings.NewReader(string(bom)),
			f,
		), utf16bom)
		return csv.NewReader(decoded), nil
	}

	// No BOM, assume sensible UTF-8
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek file: %w", err)
	}
	return csv.NewReader(f), nil
}

func (r *RosterFile) field(record []string, name string) string {
	idx, ok := r.HeaderMap[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// Next reads the next roster row as a vehicle record. Returns io.EOF
// when the file is exhausted.
func (r *RosterFile) Next() (*storage.Vehicle, error) {
	record, err := r.Read()
	if err != nil {
		return nil, err
	}

	def := r.Definition
	residentID, err := strconv.ParseInt(r.field(record, def.ResidentField), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid resident id %q: %w", r.field(record, def.ResidentField), err)
	}

	return &storage.Vehicle{
		LicensePlate: r.field(record, def.PlateField),
		Province:     r.field(record, def.ProvinceField),
		VehicleType:  r.field(record, def.TypeField),
		Brand:        r.field(record, def.BrandField),
		Color:        r.field(record, def.ColorField),
		ResidentID:   residentID,
	}, nil
}
