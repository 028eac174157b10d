package database

import (
	"errors"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gewnthar/tripcover/backend/config"
	"github.com/gewnthar/tripcover/backend/models"
	"github.com/jmoiron/sqlx"
)

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error = %v", err)
	}
	DB = sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() {
		mockDB.Close()
		DB = nil
	})
	return mock
}

func TestGetInsurancePlans(t *testing.T) {
	mock := withMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "provider", "price", "coverage_limit", "perks"}).
		AddRow("axa", "AXA", 45.0, "$200,000", "Trip cancellation|Baggage|COVID-19").
		AddRow("turismo", "Turismo", 38.0, "$150,000", "Trip cancellation|Baggage")
	mock.ExpectQuery(`SELECT id, provider, price, coverage_limit, perks\s+FROM insurance_plans`).WillReturnRows(rows)

	plans, err := GetInsurancePlans()
	if err != nil {
		t.Fatalf("GetInsurancePlans error = %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("len(plans) = %d, want 2", len(plans))
	}
	if plans[0].ID != "axa" || plans[0].Price != 45 {
		t.Fatalf("plans[0] = %+v", plans[0])
	}
	if want := (models.Perks{"Trip cancellation", "Baggage"}); !reflect.DeepEqual(plans[1].Perks, want) {
		t.Fatalf("plans[1].Perks = %v, want %v", plans[1].Perks, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetInsurancePlansQueryError(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery(`SELECT id, provider`).WillReturnError(errors.New("table missing"))

	if _, err := GetInsurancePlans(); err == nil {
		t.Fatalf("GetInsurancePlans should fail when the query fails")
	}
}

func TestGetInsurancePlansWithoutDB(t *testing.T) {
	DB = nil
	if _, err := GetInsurancePlans(); err == nil {
		t.Fatalf("GetInsurancePlans should fail without a connection")
	}
}

func TestDSN(t *testing.T) {
	got := DSN(config.DatabaseConfig{Host: "db", Port: "3306", User: "u", Password: "p", DBName: "plans"})
	if want := "u:p@tcp(db:3306)/plans?parseTime=true"; got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
