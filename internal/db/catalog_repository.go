package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/famsim/internal/data"
)

// CatalogRepository хранит шаблоны карт и скиллов в БД.
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository создаёт новый CatalogRepository.
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load reads every template and builds a validated catalog.
func (r *CatalogRepository) Load(ctx context.Context) (*data.Catalog, error) {
	skills, err := r.loadSkills(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := r.loadCards(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := data.NewCatalog(cards, skills)
	if err != nil {
		return nil, fmt.Errorf("building catalog from database: %w", err)
	}
	slog.Info("loaded catalog from database", "cards", cat.CardCount(), "skills", cat.SkillCount())
	return cat, nil
}

func (r *CatalogRepository) loadSkills(ctx context.Context) ([]data.SkillTemplate, error) {
	query := `
		SELECT id, name, type, func, calc, arg1, arg2, arg3, arg4, arg5,
		       range_id, prob, ward, auto_attack, description
		FROM skill_templates
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying skill templates: %w", err)
	}
	defer rows.Close()

	var skills []data.SkillTemplate
	for rows.Next() {
		var s data.SkillTemplate
		var typ, fn, calc, rangeID, ward int16
		if err := rows.Scan(
			&s.ID, &s.Name, &typ, &fn, &calc,
			&s.Arg1, &s.Arg2, &s.Arg3, &s.Arg4, &s.Arg5,
			&rangeID, &s.Prob, &ward, &s.AutoAttack, &s.Description,
		); err != nil {
			return nil, fmt.Errorf("scanning skill template row: %w", err)
		}
		s.Type = data.SkillType(typ)
		s.Func = data.SkillFunc(fn)
		s.Calc = data.CalcType(calc)
		s.Range = data.RangeID(rangeID)
		s.Ward = data.Ward(ward)
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating skill template rows: %w", err)
	}

	children, err := r.loadLists(ctx, `SELECT skill_id, child_id FROM skill_random_children ORDER BY skill_id, position`)
	if err != nil {
		return nil, fmt.Errorf("loading random sub-skills: %w", err)
	}
	for i := range skills {
		skills[i].RandomSkills = children[skills[i].ID]
	}
	return skills, nil
}

func (r *CatalogRepository) loadCards(ctx context.Context) ([]data.CardTemplate, error) {
	query := `
		SELECT id, name, full_name, hp, atk, def, wis, agi, auto_attack, mounted, warlord
		FROM card_templates
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying card templates: %w", err)
	}
	defer rows.Close()

	var cards []data.CardTemplate
	for rows.Next() {
		var c data.CardTemplate
		if err := rows.Scan(
			&c.ID, &c.Name, &c.FullName,
			&c.HP, &c.ATK, &c.DEF, &c.WIS, &c.AGI,
			&c.AutoAttack, &c.Mounted, &c.Warlord,
		); err != nil {
			return nil, fmt.Errorf("scanning card template row: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card template rows: %w", err)
	}

	skills, err := r.loadLists(ctx, `SELECT card_id, skill_id FROM card_template_skills ORDER BY card_id, position`)
	if err != nil {
		return nil, fmt.Errorf("loading card skills: %w", err)
	}
	for i := range cards {
		cards[i].Skills = skills[cards[i].ID]
	}
	return cards, nil
}

// loadLists reads (owner, item) pairs into ordered per-owner lists.
func (r *CatalogRepository) loadLists(ctx context.Context, query string) (map[int][]int, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := make(map[int][]int)
	for rows.Next() {
		var owner, item int
		if err := rows.Scan(&owner, &item); err != nil {
			return nil, err
		}
		lists[owner] = append(lists[owner], item)
	}
	return lists, rows.Err()
}

// Save replaces the stored catalog with cat (полная перезапись в одной транзакции).
func (r *CatalogRepository) Save(ctx context.Context, cat *data.Catalog) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx,
		`TRUNCATE card_template_skills, card_templates, skill_random_children, skill_templates`,
	); err != nil {
		return fmt.Errorf("clearing catalog tables: %w", err)
	}

	skills := cat.Skills()
	skillRows := make([][]any, 0, len(skills))
	var childRows [][]any
	for _, s := range skills {
		skillRows = append(skillRows, []any{
			s.ID, s.Name, int16(s.Type), int16(s.Func), int16(s.Calc),
			s.Arg1, s.Arg2, s.Arg3, s.Arg4, s.Arg5,
			int16(s.Range), s.Prob, int16(s.Ward), s.AutoAttack, s.Description,
		})
		for pos, child := range s.RandomSkills {
			childRows = append(childRows, []any{s.ID, pos, child})
		}
	}

	cards := cat.Cards()
	cardRows := make([][]any, 0, len(cards))
	var cardSkillRows [][]any
	for _, c := range cards {
		cardRows = append(cardRows, []any{
			c.ID, c.Name, c.FullName, c.HP, c.ATK, c.DEF, c.WIS, c.AGI,
			c.AutoAttack, c.Mounted, c.Warlord,
		})
		for pos, id := range c.Skills {
			cardSkillRows = append(cardSkillRows, []any{c.ID, pos, id})
		}
	}

	copies := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{"skill_templates", []string{
			"id", "name", "type", "func", "calc", "arg1", "arg2", "arg3", "arg4", "arg5",
			"range_id", "prob", "ward", "auto_attack", "description",
		}, skillRows},
		{"skill_random_children", []string{"skill_id", "position", "child_id"}, childRows},
		{"card_templates", []string{
			"id", "name", "full_name", "hp", "atk", "def", "wis", "agi",
			"auto_attack", "mounted", "warlord",
		}, cardRows},
		{"card_template_skills", []string{"card_id", "position", "skill_id"}, cardSkillRows},
	}
	for _, c := range copies {
		if len(c.rows) == 0 {
			continue
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows)); err != nil {
			return fmt.Errorf("copying %s: %w", c.table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	slog.Info("saved catalog to database", "cards", len(cards), "skills", len(skills))
	return nil
}
