package repository_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"workday-attendance/backend/config"
	"workday-attendance/backend/internal/model"
	"workday-attendance/backend/internal/repository"
	"workday-attendance/backend/pkg/database"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

// newTestRepo 基于内存 SQLite 创建仓储，表结构来自正式迁移文件
func newTestRepo(t *testing.T) repository.WorkDayRepository {
	t.Helper()
	logger := zap.NewNop()
	cfg := &config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"}

	db, err := database.NewDB(cfg, gormlogger.Silent, logger)
	if err != nil {
		t.Fatalf("打开内存数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取 sql.DB 失败: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.RunMigrations(sqlDB, cfg.Driver, logger); err != nil {
		t.Fatalf("迁移失败: %v", err)
	}
	return repository.NewRepository(db).WorkDay
}

func seed(t *testing.T, repo repository.WorkDayRepository, records ...model.WorkDay) {
	t.Helper()
	for i := range records {
		if err := repo.Create(context.Background(), &records[i]); err != nil {
			t.Fatalf("插入 %s 失败: %v", records[i].ID, err)
		}
	}
}

func record(id, date, driver string, hours float64) model.WorkDay {
	return model.WorkDay{
		ID:         id,
		Date:       date,
		StartTime:  "08:00:00",
		EndTime:    "16:00:00",
		BreakHours: 8 - hours,
		WorkHours:  hours,
		DriverName: driver,
	}
}

func ids(list []model.WorkDay) []string {
	out := make([]string, 0, len(list))
	for _, wd := range list {
		out = append(out, wd.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ═══════════════════════════════════════════════════════════
// Create / GetByID
// ═══════════════════════════════════════════════════════════

func TestWorkDayRepo_CreateAndRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := model.WorkDay{
		ID:         "wd-1",
		Date:       "2024-01-10",
		StartTime:  "22:00:00",
		EndTime:    "06:00:00",
		BreakHours: 1,
		WorkHours:  7,
		DriverName: "Ahmed",
		Notes:      "ملاحظة",
	}
	seed(t, repo, in)

	list, err := repo.List(ctx, repository.WorkDayFilter{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望 1 条记录，实际 %d", len(list))
	}
	if list[0] != in {
		t.Errorf("往返后字段不一致:\n期望 %+v\n实际 %+v", in, list[0])
	}

	got, err := repo.GetByID(ctx, "wd-1")
	if err != nil || *got != in {
		t.Errorf("GetByID 结果不一致: %+v, %v", got, err)
	}
}

func TestWorkDayRepo_CreateDuplicateID(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo, record("dup", "2024-01-10", "Ahmed", 7))

	dup := record("dup", "2024-01-11", "Omar", 6)
	if err := repo.Create(context.Background(), &dup); err == nil {
		t.Fatal("重复 ID 插入应失败")
	}
}

func TestWorkDayRepo_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// List 过滤与排序
// ═══════════════════════════════════════════════════════════

func TestWorkDayRepo_List_OrderedByDate(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		record("c", "2024-03-01", "Ahmed", 8),
		record("a", "2024-01-15", "Omar", 8),
		record("b", "2024-02-10", "Ahmed", 8),
	)

	list, err := repo.List(context.Background(), repository.WorkDayFilter{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if got := ids(list); !equalIDs(got, []string{"a", "b", "c"}) {
		t.Errorf("应按日期升序，实际 %v", got)
	}
}

func TestWorkDayRepo_List_DateRangeInclusive(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		record("before", "2024-01-09", "Ahmed", 8),
		record("first", "2024-01-10", "Ahmed", 8),
		record("middle", "2024-01-15", "Ahmed", 8),
		record("last", "2024-01-20", "Ahmed", 8),
		record("after", "2024-01-21", "Ahmed", 8),
	)

	list, err := repo.List(context.Background(), repository.WorkDayFilter{
		DateStart: "2024-01-10",
		DateEnd:   "2024-01-20",
	})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if got := ids(list); !equalIDs(got, []string{"first", "middle", "last"}) {
		t.Errorf("起止日期均应包含在内，实际 %v", got)
	}

	list, _ = repo.List(context.Background(), repository.WorkDayFilter{DateEnd: "2024-01-10"})
	if got := ids(list); !equalIDs(got, []string{"before", "first"}) {
		t.Errorf("仅结束日期过滤错误，实际 %v", got)
	}
}

func TestWorkDayRepo_List_LegacyISODates(t *testing.T) {
	repo := newTestRepo(t)
	legacy := record("legacy", "2024-01-20T00:00:00+00:00", "Ahmed", 8)
	seed(t, repo, legacy)

	list, _ := repo.List(context.Background(), repository.WorkDayFilter{DateStart: "2024-01-20", DateEnd: "2024-01-20"})
	if len(list) != 1 {
		t.Errorf("旧格式日期在结束日当天应被包含，实际 %d 条", len(list))
	}
}

func TestWorkDayRepo_List_DriverNameSubstring(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		record("1", "2024-01-10", "Ahmed Tamam", 7),
		record("2", "2024-01-11", "ahmed lower", 7),
		record("3", "2024-01-12", "Omar", 7),
		record("4", "2024-01-13", "Mohamed Ahmed", 7),
		record("5", "2024-01-14", "A_med", 7),
	)

	list, err := repo.List(context.Background(), repository.WorkDayFilter{DriverNameContains: "Ahmed"})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if got := ids(list); !equalIDs(got, []string{"1", "4"}) {
		t.Errorf("子串匹配应区分大小写，实际 %v", got)
	}

	// _ 与 % 按字面匹配
	list, _ = repo.List(context.Background(), repository.WorkDayFilter{DriverNameContains: "_"})
	if got := ids(list); !equalIDs(got, []string{"5"}) {
		t.Errorf("下划线应按字面匹配，实际 %v", got)
	}
}

func TestWorkDayRepo_List_FiltersCompose(t *testing.T) {
	repo := newTestRepo(t)
	seed(t, repo,
		record("match", "2024-01-10", "Ahmed", 7),
		record("other-driver", "2024-01-10", "Omar", 8),
		record("out-of-range", "2024-02-10", "Ahmed", 6),
	)

	list, err := repo.List(context.Background(), repository.WorkDayFilter{
		DateStart:          "2024-01-01",
		DateEnd:            "2024-01-31",
		DriverNameContains: "Ahmed",
	})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if got := ids(list); !equalIDs(got, []string{"match"}) {
		t.Errorf("过滤条件应以 AND 组合，实际 %v", got)
	}
}

// ═══════════════════════════════════════════════════════════
// Update / Delete
// ═══════════════════════════════════════════════════════════

func TestWorkDayRepo_Update(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seed(t, repo, record("wd-1", "2024-01-10", "Ahmed", 7))

	updated := model.WorkDay{
		ID:         "wd-1",
		Date:       "2024-01-11",
		StartTime:  "20:00:00",
		EndTime:    "02:00:00",
		BreakHours: 0,
		WorkHours:  6,
		DriverName: "Omar",
		Notes:      "",
	}
	if err := repo.Update(ctx, &updated); err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}

	got, err := repo.GetByID(ctx, "wd-1")
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if *got != updated {
		t.Errorf("所有可变字段应被替换:\n期望 %+v\n实际 %+v", updated, *got)
	}
}

func TestWorkDayRepo_Update_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	wd := record("missing", "2024-01-10", "Ahmed", 7)
	if err := repo.Update(context.Background(), &wd); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound，实际: %v", err)
	}
}

func TestWorkDayRepo_Delete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	seed(t, repo, record("wd-1", "2024-01-10", "Ahmed", 7), record("wd-2", "2024-01-11", "Omar", 7))

	if err := repo.Delete(ctx, "wd-1"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if err := repo.Delete(ctx, "wd-1"); err != nil {
		t.Errorf("重复删除应为 no-op，实际: %v", err)
	}
	if err := repo.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("删除不存在的记录应为 no-op，实际: %v", err)
	}

	list, _ := repo.List(ctx, repository.WorkDayFilter{})
	if got := ids(list); !equalIDs(got, []string{"wd-2"}) {
		t.Errorf("删除后剩余记录错误: %v", got)
	}
}
