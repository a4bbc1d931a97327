//go:build integration

package steps

import (
	"fmt"

	"github.com/cucumber/godog"
)

func registerDatabaseSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Then(`^the table "([^"]*)" should have (\d+) rows$`, t.theTableShouldHaveRows)
	ctx.Then(`^the table "([^"]*)" should have (\d+) rows where:$`, t.theTableShouldHaveRowsWhere)
	ctx.Then(`^I should own (\d+) categories$`, t.iShouldOwnCategories)
}

func (t *testContext) theTableShouldHaveRows(table string, expected int) error {
	return t.countRows(table, nil, expected)
}

// theTableShouldHaveRowsWhere filters by a two column table of column and value.
// The value "null" matches NULL columns.
func (t *testContext) theTableShouldHaveRowsWhere(table string, expected int, conditions *godog.Table) error {
	filters := make(map[string]string, len(conditions.Rows))
	for _, row := range conditions.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("conditions need exactly a column and a value")
		}
		filters[row.Cells[0].Value] = t.replacePlaceholders(row.Cells[1].Value)
	}
	return t.countRows(table, filters, expected)
}

func (t *testContext) iShouldOwnCategories(expected int) error {
	ownerID, ok := t.userIDs[t.currentUser]
	if !ok {
		return fmt.Errorf("no user is logged in")
	}
	return t.countRows("categories", map[string]string{"owner_id": ownerID.String()}, expected)
}

func (t *testContext) countRows(table string, filters map[string]string, expected int) error {
	model, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("unknown table %s", table)
	}

	query := t.db.DbConn.Model(model)
	for column, value := range filters {
		if value == "null" {
			query = query.Where(fmt.Sprintf("%s IS NULL", column))
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count %s: %w", table, err)
	}
	if count != int64(expected) {
		return fmt.Errorf("table %s: expected %d rows, got %d", table, expected, count)
	}
	return nil
}
