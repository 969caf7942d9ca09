package repository

import (
	"github.com/wildtour/wildtour-backend/internal/app/model"
	"github.com/wildtour/wildtour-backend/pkg/logger"
	"gorm.io/gorm"
)

type PackageRepository interface {
	FindAll(destinationID uint) ([]model.TourPackage, error)
	FindByID(id uint) (*model.TourPackage, error)
	Update(pkg *model.TourPackage) error
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) FindAll(destinationID uint) ([]model.TourPackage, error) {
	tx := r.db.Model(&model.TourPackage{})
	if destinationID != 0 {
		tx = tx.Where("destination_id = ?", destinationID)
	}

	var packages []model.TourPackage
	if err := tx.Preload("Destination").Order("rating DESC").Find(&packages).Error; err != nil {
		logger.Error("Failed to find tour packages in database", err, nil)
		return nil, err
	}
	return packages, nil
}

func (r *packageRepository) FindByID(id uint) (*model.TourPackage, error) {
	var pkg model.TourPackage
	if err := r.db.Preload("Destination").First(&pkg, id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) Update(pkg *model.TourPackage) error {
	if err := r.db.Save(pkg).Error; err != nil {
		logger.Error("Failed to update tour package in database", err, map[string]interface{}{
			"package_id": pkg.ID,
		})
		return err
	}
	return nil
}
