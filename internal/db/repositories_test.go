package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/shim/internal/models"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := OpenSQLite(filepath.Join(t.TempDir(), "shim-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database
}

func createTestUser(t *testing.T, repos *Repositories, email string, name string) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: "hash",
		IsActive:     true,
		Role:         models.RoleUser,
	}
	if err := repos.Users.Create(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func testRecord(userID uint, day time.Time) models.DailyRecord {
	return models.DailyRecord{
		UserID:            userID,
		RecordDate:        day,
		TimePeriod:        models.TimeMorning,
		EmotionLevel:      4,
		ConversationLevel: 3,
		MeetingCount:      1,
		TransportMode:     models.TransportSubway,
		CongestionLevel:   models.DefaultCongestionLevel,
		Location:          "강남구",
		EnergyScore:       55.5,
		EnergyLevel:       models.EnergyMedium,
	}
}

func testWeather() models.WeatherLog {
	return models.WeatherLog{
		Location:        "강남구",
		ObservedAt:      time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
		Temperature:     21,
		Condition:       models.ConditionClear,
		PM10:            30,
		PM25:            15,
		AirQualityIndex: 50,
	}
}

func TestApplyEmbeddedMigrationsIsIdempotent(t *testing.T) {
	database := openTestDB(t)

	if err := applyEmbeddedMigrations(database); err != nil {
		t.Fatalf("second migration pass: %v", err)
	}

	var applied int64
	if err := database.Table("schema_migrations").Count(&applied).Error; err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected one applied migration, got %d", applied)
	}
}

func TestUserEmailUniqueIndexIgnoresCase(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	createTestUser(t, repos, "QA-Test@Shim.Local", "first")

	second := models.User{Email: "qa-test@shim.local", Name: "second", PasswordHash: "hash", IsActive: true, Role: models.RoleUser}
	err := repos.Users.Create(&second)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey for normalized duplicate email, got %v", err)
	}
}

func TestSaveEnrichedInsertsAllRowsTogether(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	user := createTestUser(t, repos, "owner@shim.local", "owner")

	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	record := testRecord(user.ID, day)
	weather := testWeather()
	prescription := models.AiPrescription{Category: models.CategoryRecovery, RecommendationText: "rest"}

	if err := repos.Records.SaveEnriched(&record, &weather, &prescription); err != nil {
		t.Fatalf("save enriched: %v", err)
	}
	if record.ID == 0 || weather.ID == 0 || prescription.ID == 0 {
		t.Fatalf("expected ids to be assigned, got record=%d weather=%d prescription=%d", record.ID, weather.ID, prescription.ID)
	}
	if record.WeatherLogID == nil || *record.WeatherLogID != weather.ID {
		t.Fatalf("expected record to reference weather log %d, got %v", weather.ID, record.WeatherLogID)
	}
	if prescription.RecordID != record.ID {
		t.Fatalf("expected prescription record id %d, got %d", record.ID, prescription.RecordID)
	}

	exists, err := repos.Records.ExistsByUserAndDayRange(user.ID, day, day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("exists by day: %v", err)
	}
	if !exists {
		t.Fatalf("expected record to be found in its day range")
	}
}

func TestSaveEnrichedUpdateKeepsSinglePrescription(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	user := createTestUser(t, repos, "owner@shim.local", "owner")

	record := testRecord(user.ID, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))
	firstWeather := testWeather()
	prescription := models.AiPrescription{Category: models.CategoryRecovery, RecommendationText: "rest"}
	if err := repos.Records.SaveEnriched(&record, &firstWeather, &prescription); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	record.EmotionLevel = 5
	secondWeather := testWeather()
	prescription.Category = models.CategorySocial
	prescription.RecommendationText = "go out"
	if err := repos.Records.SaveEnriched(&record, &secondWeather, &prescription); err != nil {
		t.Fatalf("update save: %v", err)
	}

	count, err := repos.Prescriptions.CountByRecordID(record.ID)
	if err != nil {
		t.Fatalf("count prescriptions: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one prescription, got %d", count)
	}

	stored, found, err := repos.Prescriptions.FindByRecordID(record.ID)
	if err != nil || !found {
		t.Fatalf("find prescription: found=%v err=%v", found, err)
	}
	if stored.Category != models.CategorySocial || stored.RecommendationText != "go out" {
		t.Fatalf("expected updated prescription, got %#v", stored)
	}

	reloaded, found, err := repos.Records.FindByID(record.ID)
	if err != nil || !found {
		t.Fatalf("find record: found=%v err=%v", found, err)
	}
	if reloaded.WeatherLogID == nil || *reloaded.WeatherLogID != secondWeather.ID {
		t.Fatalf("expected record to reference newest weather log %d, got %v", secondWeather.ID, reloaded.WeatherLogID)
	}
	if _, found, _ := repos.WeatherLogs.FindByID(firstWeather.ID); !found {
		t.Fatalf("expected earlier weather log to be kept")
	}
}

func TestSaveEnrichedRejectsSecondRecordForSameDay(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	user := createTestUser(t, repos, "owner@shim.local", "owner")
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	first := testRecord(user.ID, day)
	firstWeather := testWeather()
	firstPrescription := models.AiPrescription{Category: models.CategoryRecovery, RecommendationText: "rest"}
	if err := repos.Records.SaveEnriched(&first, &firstWeather, &firstPrescription); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := testRecord(user.ID, day)
	secondWeather := testWeather()
	secondPrescription := models.AiPrescription{Category: models.CategoryRecovery, RecommendationText: "rest"}
	err := repos.Records.SaveEnriched(&second, &secondWeather, &secondPrescription)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}

	var weatherRows int64
	if err := repos.WeatherLogs.database.Model(&models.WeatherLog{}).Count(&weatherRows).Error; err != nil {
		t.Fatalf("count weather logs: %v", err)
	}
	if weatherRows != 1 {
		t.Fatalf("expected failed transaction to roll back weather insert, got %d rows", weatherRows)
	}
}

func TestDeleteAccountAndRelatedDataRemovesOwnedRows(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	owner := createTestUser(t, repos, "owner@shim.local", "owner")
	other := createTestUser(t, repos, "other@shim.local", "other")
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	ownerRecord := testRecord(owner.ID, day)
	ownerWeather := testWeather()
	ownerPrescription := models.AiPrescription{Category: models.CategoryRecovery, RecommendationText: "rest"}
	if err := repos.Records.SaveEnriched(&ownerRecord, &ownerWeather, &ownerPrescription); err != nil {
		t.Fatalf("save owner record: %v", err)
	}
	otherRecord := testRecord(other.ID, day)
	otherWeather := testWeather()
	otherPrescription := models.AiPrescription{Category: models.CategorySocial, RecommendationText: "go"}
	if err := repos.Records.SaveEnriched(&otherRecord, &otherWeather, &otherPrescription); err != nil {
		t.Fatalf("save other record: %v", err)
	}

	if err := repos.Users.DeleteAccountAndRelatedData(owner.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := repos.Users.FindActiveByID(owner.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected owner to be gone, got %v", err)
	}
	if _, found, _ := repos.Records.FindByID(ownerRecord.ID); found {
		t.Fatalf("expected owner record to be deleted")
	}
	if _, found, _ := repos.Prescriptions.FindByRecordID(ownerRecord.ID); found {
		t.Fatalf("expected owner prescription to be deleted")
	}
	if _, found, _ := repos.Records.FindByID(otherRecord.ID); !found {
		t.Fatalf("expected other user's record to survive")
	}
	if _, found, _ := repos.WeatherLogs.FindByID(ownerWeather.ID); !found {
		t.Fatalf("expected weather observation to be kept")
	}
}

func TestDeleteWithPrescriptionRemovesBoth(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	user := createTestUser(t, repos, "owner@shim.local", "owner")

	record := testRecord(user.ID, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC))
	weather := testWeather()
	prescription := models.AiPrescription{Category: models.CategoryRecovery, RecommendationText: "rest"}
	if err := repos.Records.SaveEnriched(&record, &weather, &prescription); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := repos.Records.DeleteWithPrescription(record.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found, _ := repos.Records.FindByID(record.ID); found {
		t.Fatalf("expected record to be deleted")
	}
	if count, _ := repos.Prescriptions.CountByRecordID(record.ID); count != 0 {
		t.Fatalf("expected prescription to be deleted, got %d", count)
	}
}

func TestListByUserRangeFiltersAndOrders(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	user := createTestUser(t, repos, "owner@shim.local", "owner")

	days := []time.Time{
		time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
	}
	for _, day := range days {
		record := testRecord(user.ID, day)
		weather := testWeather()
		prescription := models.AiPrescription{Category: models.CategoryRecovery, RecommendationText: "rest"}
		if err := repos.Records.SaveEnriched(&record, &weather, &prescription); err != nil {
			t.Fatalf("save %s: %v", day.Format("2006-01-02"), err)
		}
	}

	from := time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC)
	records, err := repos.Records.ListByUserRange(user.ID, &from, &to)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records in range, got %d", len(records))
	}
	if records[0].RecordDate.Day() != 3 || records[1].RecordDate.Day() != 5 {
		t.Fatalf("expected ascending dates 3,5, got %d,%d", records[0].RecordDate.Day(), records[1].RecordDate.Day())
	}

	all, err := repos.Records.ListByUserRange(user.ID, nil, nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
}

func TestUserCredentialUpdates(t *testing.T) {
	repos := NewRepositories(openTestDB(t))
	user := createTestUser(t, repos, "cred@example.com", "cred")

	if err := repos.Users.UpdatePasswordHash(user.ID, "new-hash"); err != nil {
		t.Fatalf("update password hash: %v", err)
	}
	loginAt := time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)
	if err := repos.Users.UpdateLastLogin(user.ID, loginAt); err != nil {
		t.Fatalf("update last login: %v", err)
	}

	stored, err := repos.Users.FindByNormalizedEmail("cred@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.PasswordHash != "new-hash" {
		t.Fatalf("expected new hash, got %q", stored.PasswordHash)
	}
	if stored.LastLogin == nil || !stored.LastLogin.Equal(loginAt) {
		t.Fatalf("expected last login %v, got %v", loginAt, stored.LastLogin)
	}
}
