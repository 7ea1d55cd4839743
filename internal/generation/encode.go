package generation

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"synthdata-backend/internal/llm"
	"synthdata-backend/internal/tabular"
)

// fileExtension maps an output format to its file extension.
func fileExtension(format string) string {
	if format == "excel" {
		return "xlsx"
	}
	return format
}

func encodeTabular(dataset tabular.Dataset, format string) ([]byte, error) {
	switch format {
	case "csv":
		return encodeCSV(dataset.Columns, tabularCells(dataset))
	case "excel":
		return encodeExcel(dataset.Columns, tabularCells(dataset))
	default:
		return json.MarshalIndent(dataset.Rows, "", "  ")
	}
}

// Conversations are flattened one message per row for csv and excel output.
func encodeConversations(conversations []llm.Conversation, format string) ([]byte, error) {
	if format == "json" {
		return json.MarshalIndent(conversations, "", "  ")
	}

	columns := []string{"conversation_id", "domain", "role", "message", "timestamp", "turn"}
	var rows [][]string
	for _, conv := range conversations {
		for _, msg := range conv.Messages {
			rows = append(rows, []string{
				conv.ConversationID,
				conv.Domain,
				msg.Role,
				msg.Message,
				msg.Timestamp,
				strconv.Itoa(msg.Turn),
			})
		}
	}
	if format == "csv" {
		return encodeCSV(columns, rows)
	}
	return encodeExcel(columns, rows)
}

func encodeEmails(emails []llm.Email, format string) ([]byte, error) {
	if format == "json" {
		return json.MarshalIndent(emails, "", "  ")
	}

	columns := []string{"email_id", "domain", "topic", "email_type", "subject", "from", "to", "body"}
	rows := make([][]string, 0, len(emails))
	for _, email := range emails {
		rows = append(rows, []string{
			email.EmailID,
			email.Domain,
			email.Topic,
			email.EmailType,
			email.Subject,
			email.From,
			email.To,
			email.Body,
		})
	}
	if format == "csv" {
		return encodeCSV(columns, rows)
	}
	return encodeExcel(columns, rows)
}

func tabularCells(dataset tabular.Dataset) [][]string {
	rows := make([][]string, 0, len(dataset.Rows))
	for _, row := range dataset.Rows {
		cells := make([]string, 0, len(dataset.Columns))
		for _, col := range dataset.Columns {
			cells = append(cells, formatCell(row[col]))
		}
		rows = append(rows, cells)
	}
	return rows
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func encodeCSV(columns []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeExcel(columns []string, rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, cell := range row {
			cells[j] = cell
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
