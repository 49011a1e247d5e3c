package shelves

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const (
	EncodingUTF8  = "utf8"
	EncodingCP932 = "cp932"
)

var labelHeader = []string{"location", "qr_code", "description"}

// writeLabelCSV はラベルプリンタ取り込み用の CSV を書き出す。
// cp932 の場合、表せない文字は置換される。
func writeLabelCSV(out io.Writer, rows []LabelRow, enc string) error {
	if enc != EncodingCP932 {
		return writeRecords(out, rows)
	}

	// Windows の「ANSI（CP932）」相当
	tw := transform.NewWriter(out, encoding.ReplaceUnsupported(japanese.ShiftJIS.NewEncoder()))
	if err := writeRecords(tw, rows); err != nil {
		tw.Close()
		return err
	}
	return tw.Close()
}

func writeRecords(out io.Writer, rows []LabelRow) error {
	w := csv.NewWriter(out)
	if err := w.Write(labelHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if r.QRCode == "" {
			continue
		}
		if err := w.Write([]string{r.Location, r.QRCode, r.Description}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
