package storage

import (
	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
)

// toDomain converts a database model to a domain entity.
func toDomain(m DeviceModel) domain.DeviceRecord {
	return domain.DeviceRecord{
		ID:              m.ID,
		VulnerabilityID: m.CVEID,
		MachineID:       m.MachineID,
		FixingKBID:      m.FixingKBID,
		Product: domain.Product{
			Name:    m.ProductName,
			Vendor:  m.ProductVendor,
			Version: m.ProductVersion,
		},
		Severity: m.Severity,
	}
}

// toModel converts a domain entity to a database model at the given position.
func toModel(d domain.DeviceRecord, position int) DeviceModel {
	return DeviceModel{
		ID:             d.ID,
		Position:       position,
		CVEID:          d.VulnerabilityID,
		MachineID:      d.MachineID,
		FixingKBID:     d.FixingKBID,
		ProductName:    d.Product.Name,
		ProductVendor:  d.Product.Vendor,
		ProductVersion: d.Product.Version,
		Severity:       d.Severity,
	}
}
