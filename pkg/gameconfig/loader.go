// Package gameconfig 加载策划数据表
//
// 每张表是数据目录下的 <table>.json，内容为对象数组。可选表缺失时按空表处理。
package gameconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/pkg/logger"
)

// Row 数据表的一行
type Row = map[string]any

// Loader 按表名读取原始行
type Loader func(table string) ([]Row, error)

// NewFileLoader 创建本地文件 JSON 加载器
func NewFileLoader(dataDir string, l logger.Logger) (Loader, error) {
	if l == nil {
		return nil, errors.New("gameconfig: logger is required")
	}

	return func(table string) ([]Row, error) {
		fileName := strings.ToLower(table) + ".json"
		filePath := filepath.Join(dataDir, fileName)

		data, err := os.ReadFile(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				l.Warn("optional data table not found, initializing as empty",
					"table", table,
					"path", filePath)
				return []Row{}, nil
			}
			return nil, errors.Wrapf(err, "read data table %s", filePath)
		}

		var rows []Row
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, errors.Wrapf(err, "unmarshal data table %s", filePath)
		}
		return rows, nil
	}, nil
}

// NewMapLoader 从内存中的表构造加载器，未列出的表为空
func NewMapLoader(tables map[string][]Row) Loader {
	return func(table string) ([]Row, error) {
		return tables[strings.ToLower(table)], nil
	}
}
