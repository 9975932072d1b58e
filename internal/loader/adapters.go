package loader

import (
	"github.com/mile-high-maps/nearby-cli/internal/model"
	"github.com/mile-high-maps/nearby-cli/internal/normalize"
)

// Provider field names are case-specific and drift between layer versions,
// so every attribute lookup runs through an ordered candidate list; first
// non-empty wins. These tables are the only place the lists live.

var geojsonAdapters = map[model.CategoryKey]normalize.GeoJSONAdapter{
	model.CategorySitePlans: {
		DefaultName: "Site development plan",
		NameKeys:    []string{"PROJECT_NAME", "ProjectName", "PLAN_NAME", "DEV_NAME", "NAME", "name"},
		StatusKeys:  []string{"STATUS", "Status", "PLAN_STATUS", "status"},
		DateKeys:    []string{"UPDATED_DATE", "LAST_UPDATE", "UpdatedDate", "DATE_UPDATED", "updated_at"},
	},
}

var arcgisAdapters = map[model.CategoryKey]normalize.ArcGISAdapter{
	model.CategoryConstruction: {
		DefaultName: "Construction project",
		NameKeys:    []string{"PROJECT_NAME", "ProjectName", "PROJ_NAME", "TITLE", "DESCRIPTION", "NAME"},
		StatusKeys:  []string{"STATUS", "Status", "PHASE", "PROJECT_PHASE"},
		DateKeys:    []string{"LAST_UPDATED", "UPDATED", "EditDate", "last_edited_date", "DATE_UPDATED"},
		WebsiteKeys: []string{"WEBSITE", "PROJECT_URL", "URL", "WEB_LINK"},
	},
	model.CategoryRNOs: {
		DefaultName:   "Neighborhood organization",
		NameKeys:      []string{"ORG_NAME", "NAME", "RNO_NAME", "ORGANIZATION"},
		StatusKeys:    []string{"STATUS", "Status"},
		DateKeys:      []string{"LAST_UPDATED", "UPDATED", "EditDate", "DATE_UPDATED"},
		RNONumberKeys: []string{"RNO_NUM", "RNO_NUMBER", "ORG_ID", "RNO_ID"},
		WebsiteKeys:   []string{"WEBSITE", "WEB_SITE", "URL"},
	},
}

var overpassDefaultNames = map[model.CategoryKey]string{
	model.CategoryTransit: "Transit stop",
	model.CategoryGrocery: "Grocery store",
}
