package ods

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/peter88213/novelibre-sub001/internal/domain/errs"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/odf"
	"github.com/peter88213/novelibre-sub001/internal/infrastructure/xmldom"
)

// maxRepeat bounds number-columns-repeated, which office suites use to pad
// rows up to the sheet width.
const maxRepeat = 256

var durationValue = regexp.MustCompile(`^PT(\d+)H(\d+)M(\d+)(?:\.\d+)?S$`)

// readTable returns the rows of the first table as cell strings.
func readTable(path string) ([][]string, error) {
	r, err := odf.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := r.ReadFile(odf.ContentFile)
	if err != nil {
		return nil, err
	}
	root, err := xmldom.ParseMixed(bytes.NewReader(data))
	if err != nil {
		return nil, errs.NewFormatError(path, "cannot process content", err)
	}

	var table *xmldom.Node
	if body := root.Find("body"); body != nil {
		if spreadsheet := body.Find("spreadsheet"); spreadsheet != nil {
			table = spreadsheet.Find("table")
		}
	}
	if table == nil {
		return nil, errs.NewFormatError(path, "no table found", nil)
	}

	var rows [][]string
	var collect func(parent *xmldom.Node)
	collect = func(parent *xmldom.Node) {
		for _, el := range parent.Elements() {
			switch el.Name {
			case "table-row":
				rows = append(rows, readRow(el))
			case "table-header-rows", "table-rows", "table-row-group":
				collect(el)
			}
		}
	}
	collect(table)
	return rows, nil
}

func readRow(row *xmldom.Node) []string {
	var cells []string
	for _, c := range row.Elements() {
		if c.Name != "table-cell" && c.Name != "covered-table-cell" {
			continue
		}
		repeat, err := strconv.Atoi(c.AttrLocal("number-columns-repeated"))
		if err != nil || repeat < 1 {
			repeat = 1
		}
		repeat = min(repeat, maxRepeat)
		v := cellValue(c)
		for range repeat {
			cells = append(cells, v)
		}
	}
	return cells
}

func cellValue(c *xmldom.Node) string {
	switch c.AttrLocal("value-type") {
	case "date":
		v := c.AttrLocal("date-value")
		if len(v) > 10 {
			v = v[:10]
		}
		return v
	case "time":
		if m := durationValue.FindStringSubmatch(c.AttrLocal("time-value")); m != nil {
			h, _ := strconv.Atoi(m[1])
			mi, _ := strconv.Atoi(m[2])
			s, _ := strconv.Atoi(m[3])
			if s == 0 {
				return fmt.Sprintf("%02d:%02d", h, mi)
			}
			return fmt.Sprintf("%02d:%02d:%02d", h, mi, s)
		}
	case "float":
		v := c.AttrLocal("value")
		if f, err := strconv.ParseFloat(v, 64); err == nil && f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return v
	}
	var lines []string
	for _, p := range c.FindAll("p") {
		lines = append(lines, p.InnerText())
	}
	return strings.Join(lines, "\n")
}
