package access

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func writeRoster(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestOpenRosterEnglish(t *testing.T) {
	path := writeRoster(t, "roster.csv",
		"LICENSE PLATE,PROVINCE,VEHICLE TYPE,BRAND,COLOR,RESIDENT ID\n"+
			"1กข 1234,กรุงเทพมหานคร,sedan,Toyota,white,7\n"+
			"2ขค 9876,ชลบุรี,pickup,Isuzu,black,12\n")

	roster, closer, err := OpenRoster(path)
	require.NoError(t, err)
	defer closer()

	assert.Equal(t, "en", roster.Definition.Language)

	v, err := roster.Next()
	require.NoError(t, err)
	assert.Equal(t, "1กข 1234", v.LicensePlate)
	assert.Equal(t, "กรุงเทพมหานคร", v.Province)
	assert.Equal(t, "sedan", v.VehicleType)
	assert.Equal(t, "Toyota", v.Brand)
	assert.Equal(t, "white", v.Color)
	assert.EqualValues(t, 7, v.ResidentID)

	v, err = roster.Next()
	require.NoError(t, err)
	assert.EqualValues(t, 12, v.ResidentID)

	_, err = roster.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestOpenRosterThaiHeaders(t *testing.T) {
	path := writeRoster(t, "roster_th.csv",
		"ทะเบียนรถ,จังหวัด,ประเภทรถ,ยี่ห้อ,สี,รหัสผู้พักอาศัย\n"+
			"3งจ 555,เชียงใหม่,มอเตอร์ไซค์,Honda,แดง,3\n")

	roster, closer, err := OpenRoster(path)
	require.NoError(t, err)
	defer closer()

	assert.Equal(t, "th", roster.Definition.Language)

	v, err := roster.Next()
	require.NoError(t, err)
	assert.Equal(t, "3งจ 555", v.LicensePlate)
	assert.Equal(t, "เชียงใหม่", v.Province)
	assert.EqualValues(t, 3, v.ResidentID)
}

func TestOpenRosterUTF16(t *testing.T) {
	// Spreadsheet-style export, UTF-16 little endian with BOM
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	content, err := enc.String(
		"LICENSE PLATE,PROVINCE,VEHICLE TYPE,BRAND,COLOR,RESIDENT ID\n" +
			"1กข 1234,กรุงเทพมหานคร,sedan,Toyota,white,7\n")
	require.NoError(t, err)

	path := writeRoster(t, "roster_utf16.csv", content)

	roster, closer, err := OpenRoster(path)
	require.NoError(t, err)
	defer closer()

	v, err := roster.Next()
	require.NoError(t, err)
	assert.Equal(t, "1กข 1234", v.LicensePlate)
	assert.Equal(t, "กรุงเทพมหานคร", v.Province)
	assert.EqualValues(t, 7, v.ResidentID)
}

func TestOpenRosterMissingColumns(t *testing.T) {
	path := writeRoster(t, "bad.csv",
		"LICENSE PLATE,PROVINCE\n1กข 1234,กรุงเทพมหานคร\n")

	_, _, err := OpenRoster(path)
	assert.ErrorContains(t, err, "missing required columns")
}

func TestOpenRosterMissingFile(t *testing.T) {
	_, _, err := OpenRoster(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestNextInvalidResidentID(t *testing.T) {
	path := writeRoster(t, "roster.csv",
		"LICENSE PLATE,PROVINCE,VEHICLE TYPE,BRAND,COLOR,RESIDENT ID\n"+
			"1กข 1234,กรุงเทพมหานคร,sedan,Toyota,white,not-a-number\n")

	roster, closer, err := OpenRoster(path)
	require.NoError(t, err)
	defer closer()

	_, err = roster.Next()
	assert.ErrorContains(t, err, "invalid resident id")
}
