package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/ncpeek/internal/dataset"
	"github.com/san-kum/ncpeek/internal/slice"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type Dimension struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// Document holds one extracted variable.
type Document struct {
	Variable   string         `json:"variable"`
	Attributes map[string]any `json:"attributes"`
	Dimensions []Dimension    `json:"dimensions"`
	Shape      []int          `json:"shape"`
	Data       Values         `json:"data"`
}

// Converter extracts every variable of a file. When TimeIndex is not
// negative, data-bearing variables whose leading dimension is TimeDim are
// cut to that one time step; coordinate variables are always read whole.
type Converter struct {
	File       *dataset.File
	TimeDim    string
	TimeIndex  int
	YearOffset int
	Log        logrus.FieldLogger
}

func (c *Converter) log() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

// Documents reads every numeric variable in file order. Variables holding
// text are skipped with a warning.
func (c *Converter) Documents(ctx context.Context) ([]Document, error) {
	docs := make([]Document, 0, len(c.File.Variables))
	for _, v := range c.File.Variables {
		doc, err := c.document(ctx, v)
		if errors.Is(err, dataset.ErrNonNumeric) {
			c.log().WithFields(logrus.Fields{
				"variable": v.Name,
				"type":     v.Type,
			}).Warn("skipping non-numeric variable")
			continue
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *Converter) plan(v *dataset.Variable) slice.Plan {
	p := slice.FullPlan(v.DimNames(), v.Shape())
	if c.TimeIndex >= 0 && v.DataBearing && v.Rank() > 0 && v.Dimensions[0].Name == c.TimeDim {
		p.Ranges[0] = slice.Single(c.TimeIndex)
	}
	return p
}

func (c *Converter) document(ctx context.Context, v *dataset.Variable) (Document, error) {
	doc := Document{
		Variable:   v.Name,
		Attributes: v.Attributes.Map(),
		Dimensions: make([]Dimension, v.Rank()),
	}
	p := c.plan(v)
	doc.Shape = p.Counts()
	for i, d := range v.Dimensions {
		doc.Dimensions[i] = Dimension{Name: d.Name, Length: doc.Shape[i]}
	}
	if v.Size() == 0 {
		doc.Data = Values{}
		return doc, nil
	}

	src, err := c.File.Source(v)
	if err != nil {
		return Document{}, err
	}
	g, err := slice.NewReader(v, src).Read(ctx, p)
	if err != nil {
		return Document{}, err
	}
	doc.Data = g.Values
	c.log().WithFields(logrus.Fields{
		"variable": v.Name,
		"plan":     p.String(),
		"values":   len(g.Values),
	}).Debug("extracted")
	return doc, nil
}

// WriteJSON encodes docs as one JSON array.
func WriteJSON(w io.Writer, docs []Document) error {
	return json.NewEncoder(w).Encode(docs)
}

// WriteCSV writes one record per variable: its name followed by its values.
// With a non-zero yearOffset the values of timeVar are shifted by it, which
// turns "years since Y" offsets into calendar years.
func WriteCSV(w io.Writer, docs []Document, timeVar string, yearOffset int) error {
	cw := csv.NewWriter(w)
	for _, doc := range docs {
		record := make([]string, 0, len(doc.Data)+1)
		record = append(record, doc.Variable)
		shift := 0.0
		if yearOffset != 0 && doc.Variable == timeVar {
			shift = float64(yearOffset)
		}
		for _, v := range doc.Data {
			record = append(record, formatValue(v+shift))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Convert extracts the file and writes it to path in format.
func (c *Converter) Convert(ctx context.Context, path, format string) error {
	format = strings.ToLower(format)
	if format != FormatJSON && format != FormatCSV {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	docs, err := c.Documents(ctx)
	if err != nil {
		return err
	}
	err = WriteFile(path, func(w io.Writer) error {
		if format == FormatCSV {
			return WriteCSV(w, docs, c.TimeDim, c.YearOffset)
		}
		return WriteJSON(w, docs)
	})
	if err != nil {
		return err
	}
	c.log().WithFields(logrus.Fields{
		"path":      path,
		"format":    format,
		"variables": len(docs),
	}).Info("saved")
	return nil
}
