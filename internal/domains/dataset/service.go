package dataset

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tobenna/maestro/internal/config"
	"github.com/tobenna/maestro/internal/types"
	"github.com/tobenna/maestro/pkg/Logger"
	"github.com/tobenna/maestro/pkg/assistant/adapters"
	"github.com/tobenna/maestro/pkg/assistant/router"
	"gorm.io/gorm"
)

var (
	ErrUnknownDataset = errors.New("unknown dataset")
	ErrUnsafeSQL      = errors.New("generated statement is not a plain SELECT")
)

const maxRows = 100

const sqlSystemPrompt = "You translate questions into a single MySQL SELECT statement.\n" +
	"Dataset: %s (%s)\nTables: %s\n" +
	"Output only the SQL statement, nothing else."

var forbiddenKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "ALTER", "CREATE",
	"TRUNCATE", "GRANT", "REVOKE", "REPLACE", "LOAD", "CALL",
	"INTO", "OUTFILE", "DUMPFILE", "FOR",
}

// DatasetService answers data questions by generating and running a
// read-only SQL statement against a named dataset.
type DatasetService interface {
	RunDBAgent(ctx context.Context, prompt, llmID, datasetName, userEmail string) (*types.DBResult, string, error)
}

type datasetService struct {
	db       *gorm.DB
	mux      *router.Mux
	datasets map[string]config.DatasetConfig
	logger   *Logger.Logger
}

func New(db *gorm.DB, mux *router.Mux, datasets []config.DatasetConfig, logger *Logger.Logger) DatasetService {
	byName := make(map[string]config.DatasetConfig, len(datasets))
	for _, ds := range datasets {
		byName[ds.Name] = ds
	}
	return &datasetService{db: db, mux: mux, datasets: byName, logger: logger}
}

// RunDBAgent implements DatasetService.
func (d *datasetService) RunDBAgent(ctx context.Context, prompt, llmID, datasetName, userEmail string) (*types.DBResult, string, error) {
	ds, ok := d.datasets[datasetName]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrUnknownDataset, datasetName)
	}

	msgs := []adapters.ContractMessage{
		{Role: adapters.SYSTEM, Content: fmt.Sprintf(sqlSystemPrompt,
			ds.Name, ds.Description, strings.Join(ds.Tables, ", "))},
		{Role: adapters.USER, Content: prompt},
	}
	out, err := d.mux.Run(ctx, llmID, msgs, nil)
	if err != nil {
		return nil, "", fmt.Errorf("db agent for %s: %w", datasetName, err)
	}

	stmt, err := ExtractSQL(out.Text)
	if err != nil {
		return nil, out.Trace, err
	}

	d.logger.Infof("db agent for %s (user %s) running: %s", datasetName, userEmail, stmt)

	columns, data, err := d.runSelect(ctx, stmt)
	if err != nil {
		return nil, out.Trace, fmt.Errorf("run db query: %w", err)
	}

	result := &types.DBResult{
		Columns: columns,
		Data:    data,
		Resources: map[string]any{
			"dataset": datasetName,
			"query":   stmt,
			"columns": columns,
			"data":    data,
		},
	}
	return result, out.Trace, nil
}

func (d *datasetService) runSelect(ctx context.Context, stmt string) ([]string, []map[string]any, error) {
	rows, err := d.db.WithContext(ctx).Raw(stmt).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var data []map[string]any
	for rows.Next() && len(data) < maxRows {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		data = append(data, row)
	}
	return columns, data, rows.Err()
}

// ExtractSQL pulls the statement out of model output and rejects
// anything but a single SELECT.
func ExtractSQL(output string) (string, error) {
	stmt := strings.TrimSpace(output)
	if fenced := strings.Index(stmt, "```"); fenced >= 0 {
		stmt = stmt[fenced+3:]
		stmt = strings.TrimPrefix(stmt, "sql")
		if end := strings.Index(stmt, "```"); end >= 0 {
			stmt = stmt[:end]
		}
		stmt = strings.TrimSpace(stmt)
	}
	stmt = strings.TrimSuffix(stmt, ";")

	if stmt == "" {
		return "", ErrUnsafeSQL
	}
	if strings.Contains(stmt, ";") {
		return "", ErrUnsafeSQL
	}
	upper := strings.ToUpper(stmt)
	if !strings.HasPrefix(upper, "SELECT") {
		return "", ErrUnsafeSQL
	}
	for _, kw := range forbiddenKeywords {
		if containsWord(upper, kw) {
			return "", ErrUnsafeSQL
		}
	}
	return stmt, nil
}

func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordChar(s[i-1])
		afterIdx := i + len(word)
		after := afterIdx >= len(s) || !isWordChar(s[afterIdx])
		if before && after {
			return true
		}
		idx = i + len(word)
	}
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
