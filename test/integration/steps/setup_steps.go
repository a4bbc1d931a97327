//go:build integration

package steps

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"

	"github.com/kakeibo/backend/internal/integration/persistence/model"
)

const testPassword = "correct-horse-battery"

func registerSetupSteps(ctx *godog.ScenarioContext, t *testContext) {
	ctx.Given(`^today is "([^"]*)"$`, t.todayIs)
	ctx.Given(`^I am registered and logged in as "([^"]*)"$`, t.iAmRegisteredAndLoggedInAs)
	ctx.Given(`^I am logged in as "([^"]*)"$`, t.iAmLoggedInAs)
	ctx.Given(`^I am not authenticated$`, t.theHeaderIsEmpty)
	ctx.Given(`^the following entries exist:$`, t.theFollowingEntriesExist)
	ctx.Given(`^the category "([^"]*)" of type "([^"]*)" exists under "([^"]*)"$`, t.theCategoryExistsUnder)
}

func (t *testContext) todayIs(date string) error {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	t.clock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func (t *testContext) iAmRegisteredAndLoggedInAs(email string) error {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": testPassword,
	})
	if err != nil {
		return err
	}

	t.accessToken = ""
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", body); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("registration of %s failed with %d: %v", email, t.response.status, t.response.body)
	}

	return t.storeSession(email)
}

// iAmLoggedInAs switches the scenario to a user registered earlier in it.
func (t *testContext) iAmLoggedInAs(email string) error {
	token, ok := t.tokens[email]
	if !ok {
		return fmt.Errorf("user %s has not been registered in this scenario", email)
	}
	t.accessToken = token
	t.currentUser = email
	return nil
}

func (t *testContext) storeSession(email string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	accessToken, _ := body["access_token"].(string)
	refreshToken, _ := body["refresh_token"].(string)
	userID, _ := getFieldValue(body, "user.id").(string)
	if accessToken == "" || userID == "" {
		return fmt.Errorf("auth response is missing tokens: %v", body)
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	t.accessToken = accessToken
	t.refreshToken = refreshToken
	t.tokens[email] = accessToken
	t.userIDs[email] = id
	t.currentUser = email
	return nil
}

func (t *testContext) theCategoryExistsUnder(name, categoryType, parent string) error {
	parentID, err := t.categoryID(parent, categoryType)
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]any{
		"name":      name,
		"type":      categoryType,
		"parent_id": parentID,
	})
	if err != nil {
		return err
	}

	if err := t.executeRequest(http.MethodPost, "/api/v1/categories", body); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("creating category %s failed with %d: %v", name, t.response.status, t.response.body)
	}
	return nil
}

// theFollowingEntriesExist records entries through the API.
// Columns: type, amount, happened_on and optionally category and note.
func (t *testContext) theFollowingEntriesExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("entries table needs a header and at least one row")
	}

	header := table.Rows[0].Cells
	for _, row := range table.Rows[1:] {
		values := make(map[string]string, len(header))
		for i, cell := range row.Cells {
			values[header[i].Value] = cell.Value
		}

		payload := map[string]any{
			"type":        values["type"],
			"amount":      json.Number(values["amount"]),
			"happened_on": values["happened_on"],
			"note":        values["note"],
		}
		if name := values["category"]; name != "" {
			id, err := t.categoryID(name, values["type"])
			if err != nil {
				return err
			}
			payload["category_id"] = id
		}

		body, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		if err := t.executeRequest(http.MethodPost, "/api/v1/entries", body); err != nil {
			return err
		}
		if t.response.status != http.StatusCreated {
			return fmt.Errorf("creating entry %v failed with %d: %v", values, t.response.status, t.response.body)
		}
	}

	return nil
}

func (t *testContext) categoryID(name, categoryType string) (string, error) {
	ownerID, ok := t.userIDs[t.currentUser]
	if !ok {
		return "", fmt.Errorf("no user is logged in")
	}

	var category model.CategoryModel
	err := t.db.DbConn.
		Where("owner_id = ? AND name = ? AND type = ?", ownerID, name, categoryType).
		First(&category).Error
	if err != nil {
		return "", fmt.Errorf("category %s (%s) not found: %w", name, categoryType, err)
	}
	return category.ID.String(), nil
}
