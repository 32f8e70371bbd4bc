package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	SortByCreatedAt  = "created_at"
	SortByFileSize   = "file_size"
	SortByClientName = "client_name"
)

var sortColumns = map[string]string{
	SortByCreatedAt:  "m.created_at",
	SortByFileSize:   "m.file_size",
	SortByClientName: "m.client_name",
}

// MediaFilter 媒体列表筛选条件，零值表示不过滤
type MediaFilter struct {
	IDs         []uuid.UUID
	OwnerUserID *uuid.UUID
	ClientName  string
	Search      string
	Tag         string
	From        *time.Time
	To          *time.Time
	FolderID    *uuid.UUID
	Unfiled     bool
	StarredOnly bool
	SortBy      string
	SortOrder   string
	Limit       int
	Offset      int
}

// mediaQueryBuilder 按条件拼接 JOIN/WHERE，参数全部以占位符传入
type mediaQueryBuilder struct {
	joins []string
	conds []string
	args  []any
}

func newMediaQueryBuilder(f MediaFilter) *mediaQueryBuilder {
	b := &mediaQueryBuilder{}

	if f.Tag != "" {
		b.joins = append(b.joins,
			"JOIN media_tags mt_filter ON mt_filter.media_id = m.id",
			"JOIN tags t_filter ON t_filter.id = mt_filter.tag_id AND t_filter.name = ?")
		b.args = append(b.args, strings.ToLower(strings.TrimSpace(f.Tag)))
	}
	if len(f.IDs) > 0 {
		b.where("m.id IN ?", f.IDs)
	}
	if f.OwnerUserID != nil {
		b.where("m.owner_user_id = ?", *f.OwnerUserID)
	}
	if f.ClientName != "" {
		b.where("m.client_name ILIKE ?", likePattern(f.ClientName))
	}
	if f.Search != "" {
		pattern := likePattern(f.Search)
		b.where("(m.caption ILIKE ? OR m.client_name ILIKE ?)", pattern, pattern)
	}
	if f.From != nil {
		b.where("m.created_at >= ?", *f.From)
	}
	if f.To != nil {
		b.where("m.created_at <= ?", *f.To)
	}
	if f.Unfiled {
		b.where("m.folder_id IS NULL")
	} else if f.FolderID != nil {
		b.where("m.folder_id = ?", *f.FolderID)
	}
	if f.StarredOnly {
		b.where("m.is_starred = TRUE")
	}
	return b
}

func (b *mediaQueryBuilder) where(cond string, args ...any) {
	b.conds = append(b.conds, cond)
	b.args = append(b.args, args...)
}

func (b *mediaQueryBuilder) fromClause(sb *strings.Builder) {
	sb.WriteString(" FROM media_assets m")
	for _, j := range b.joins {
		sb.WriteString(" ")
		sb.WriteString(j)
	}
}

func (b *mediaQueryBuilder) whereClause(sb *strings.Builder) {
	if len(b.conds) == 0 {
		return
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(b.conds, " AND "))
}

// BuildMediaQuery 生成列表查询，星标优先，其次按白名单列排序
func BuildMediaQuery(f MediaFilter) (string, []any) {
	b := newMediaQueryBuilder(f)

	var sb strings.Builder
	sb.WriteString("SELECT m.*, u.name AS owner_name, u.email AS owner_email, ")
	sb.WriteString("COALESCE(json_agg(DISTINCT t.name) FILTER (WHERE t.name IS NOT NULL), '[]')::text AS tag_list")
	b.fromClause(&sb)
	sb.WriteString(" JOIN users u ON u.id = m.owner_user_id")
	sb.WriteString(" LEFT JOIN media_tags mt ON mt.media_id = m.id")
	sb.WriteString(" LEFT JOIN tags t ON t.id = mt.tag_id")
	b.whereClause(&sb)
	sb.WriteString(" GROUP BY m.id, u.name, u.email")
	sb.WriteString(" ORDER BY m.is_starred DESC, ")
	sb.WriteString(sortColumn(f.SortBy))
	sb.WriteString(" ")
	sb.WriteString(sortDirection(f.SortOrder))
	sb.WriteString(", m.created_at DESC")

	args := b.args
	if f.Limit > 0 {
		sb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, f.Limit, f.Offset)
	}
	return sb.String(), args
}

// BuildMediaCountQuery 与列表查询使用相同的筛选条件
func BuildMediaCountQuery(f MediaFilter) (string, []any) {
	b := newMediaQueryBuilder(f)

	var sb strings.Builder
	sb.WriteString("SELECT COUNT(DISTINCT m.id)")
	b.fromClause(&sb)
	b.whereClause(&sb)
	return sb.String(), b.args
}

func sortColumn(sortBy string) string {
	if col, ok := sortColumns[sortBy]; ok {
		return col
	}
	return sortColumns[SortByCreatedAt]
}

func sortDirection(order string) string {
	if strings.EqualFold(order, "asc") {
		return "ASC"
	}
	return "DESC"
}

// likePattern 转义 LIKE 通配符后包裹 %
func likePattern(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(v) + "%"
}
