package db

// Test-only accessors. The session log is write-only for the application,
// so inspecting it lives here instead of on the public surface.

func (s *Store) SessionLogForCard(cardID uint) ([]SessionLogEntry, error) {
	var entries []SessionLogEntry
	err := s.gorm.Where("card_id = ?", cardID).Order("id ASC").Find(&entries).Error
	return entries, err
}

func (s *Store) TotalRows(model any) (int64, error) {
	var count int64
	err := s.gorm.Model(model).Count(&count).Error
	return count, err
}
