package crm

import (
	"github.com/goliatone/go-dynamicform/pkg/detail"
	"github.com/goliatone/go-dynamicform/pkg/formconfig"
	"github.com/goliatone/go-dynamicform/pkg/table"
)

// phonePattern accepts international numbers with an optional leading plus.
const phonePattern = `^[\+]?[1-9][\d]{0,15}$`

var industryOptions = []formconfig.Option{
	{Value: "technology", Label: "Technology"},
	{Value: "healthcare", Label: "Healthcare"},
	{Value: "finance", Label: "Finance"},
	{Value: "education", Label: "Education"},
	{Value: "retail", Label: "Retail"},
	{Value: "manufacturing", Label: "Manufacturing"},
	{Value: "marketing", Label: "Marketing"},
	{Value: "consulting", Label: "Consulting"},
	{Value: "other", Label: "Other"},
}

var statusOptions = []formconfig.Option{
	{Value: "active", Label: "Active"},
	{Value: "prospect", Label: "Prospect"},
	{Value: "inactive", Label: "Inactive"},
}

var priorityOptions = []formconfig.Option{
	{Value: "low", Label: "Low"},
	{Value: "medium", Label: "Medium"},
	{Value: "high", Label: "High"},
}

// CustomerFormConfig describes the customer create/edit form.
func CustomerFormConfig() formconfig.FormConfig {
	return formconfig.FormConfig{
		Title: "Customer",
		Sections: []formconfig.Section{
			{
				Title: "Personal Information",
				Fields: []formconfig.Field{
					{Name: "firstName", Label: "First Name", Kind: formconfig.KindText,
						Validation: formconfig.StringMin(2, "First name must be at least 2 characters")},
					{Name: "lastName", Label: "Last Name", Kind: formconfig.KindText,
						Validation: formconfig.StringMin(2, "Last name must be at least 2 characters")},
					{Name: "email", Label: "Email", Kind: formconfig.KindEmail},
					{Name: "phone", Label: "Phone", Kind: formconfig.KindPhone,
						Validation: formconfig.PatternRule(phonePattern, "Please enter a valid phone number")},
				},
			},
			{
				Title: "Company Information",
				Fields: []formconfig.Field{
					{Name: "company", Label: "Company", Kind: formconfig.KindText,
						Validation: formconfig.StringMin(2, "Company name must be at least 2 characters")},
					{Name: "jobTitle", Label: "Job Title", Kind: formconfig.KindText},
					{Name: "industry", Label: "Industry", Kind: formconfig.KindSelect, Options: industryOptions},
					{Name: "website", Label: "Website", Kind: formconfig.KindURL},
				},
			},
			{
				Title: "Preferences & Settings",
				Fields: []formconfig.Field{
					{Name: "age", Label: "Age", Kind: formconfig.KindNumber,
						Validation: formconfig.NumberBetween(18, 120, "")},
					{Name: "status", Label: "Status", Kind: formconfig.KindSelect, Options: statusOptions,
						Validation: formconfig.EnumOf("Please select a value", "active", "prospect", "inactive")},
					{Name: "priority", Label: "Priority", Kind: formconfig.KindSelect, Options: priorityOptions},
					{Name: "newsletter", Label: "Subscribe to Newsletter", Kind: formconfig.KindCheckbox},
				},
			},
		},
	}
}

// UserFormConfig describes the account create/edit form.
func UserFormConfig() formconfig.FormConfig {
	return formconfig.FormConfig{
		Title: "User",
		Sections: []formconfig.Section{
			{
				Title: "Account",
				Fields: []formconfig.Field{
					{Name: "name", Label: "Name", Kind: formconfig.KindText,
						Validation: formconfig.StringMin(2, "Name must be at least 2 characters")},
					{Name: "email", Label: "Email", Kind: formconfig.KindEmail},
					{Name: "password", Label: "Password", Kind: formconfig.KindPassword,
						Validation: formconfig.StringMin(8, "Password must be at least 8 characters")},
					{Name: "role", Label: "Role", Kind: formconfig.KindSelect, Options: []formconfig.Option{
						{Value: "admin", Label: "Admin"},
						{Value: "manager", Label: "Manager"},
						{Value: "user", Label: "User"},
					}},
					{Name: "status", Label: "Status", Kind: formconfig.KindSelect, Options: statusOptions},
				},
			},
		},
	}
}

// LoginFormConfig describes the credential prompt.
func LoginFormConfig() formconfig.FormConfig {
	return formconfig.FormConfig{
		Title: "Sign In",
		Sections: []formconfig.Section{
			{
				Fields: []formconfig.Field{
					{Name: "email", Label: "Email", Kind: formconfig.KindEmail},
					{Name: "password", Label: "Password", Kind: formconfig.KindPassword},
				},
			},
		},
	}
}

// CustomerDetailConfig describes the read-only customer view.
func CustomerDetailConfig() detail.Config {
	return detail.Config{
		ItemType:    "Customer",
		Description: "View detailed customer information",
		Sections: []detail.Section{
			{
				Title: "Personal Information",
				Fields: []detail.Field{
					{Name: "firstName", Label: "First Name", Display: detail.DisplayValue},
					{Name: "lastName", Label: "Last Name", Display: detail.DisplayValue},
					{Name: "email", Label: "Email", Display: detail.DisplayLink, Link: detail.LinkEmail},
					{Name: "phone", Label: "Phone", Display: detail.DisplayLink, Link: detail.LinkPhone},
				},
			},
			{
				Title: "Company Information",
				Fields: []detail.Field{
					{Name: "company", Label: "Company Name", Display: detail.DisplayValue},
					{Name: "jobTitle", Label: "Job Title", Display: detail.DisplayValue},
					{Name: "industry", Label: "Industry", Display: detail.DisplayValue},
					{Name: "website", Label: "Website", Display: detail.DisplayLink, Link: detail.LinkURL, External: true},
				},
			},
			{
				Title: "Preferences & Settings",
				Fields: []detail.Field{
					{Name: "age", Label: "Age", Display: detail.DisplayValue},
					{Name: "status", Label: "Status", Display: detail.DisplayBadge, Badges: map[string]detail.BadgeStyle{
						"active":   {Variant: "default", Label: "Active"},
						"prospect": {Variant: "secondary", Label: "Prospect"},
						"inactive": {Variant: "destructive", Label: "Inactive"},
					}},
					{Name: "priority", Label: "Priority Level", Display: detail.DisplayValue},
					{Name: "created", Label: "Customer Since", Display: detail.DisplayDate},
				},
			},
		},
	}
}

// UserDetailConfig describes the read-only account view.
func UserDetailConfig() detail.Config {
	return detail.Config{
		ItemType: "User",
		Sections: []detail.Section{
			{
				Title: "Account",
				Fields: []detail.Field{
					{Name: "name", Label: "Name", Display: detail.DisplayValue},
					{Name: "email", Label: "Email", Display: detail.DisplayLink, Link: detail.LinkEmail},
					{Name: "role", Label: "Role", Display: detail.DisplayBadge, Badges: map[string]detail.BadgeStyle{
						"admin":   {Variant: "destructive", Label: "Admin"},
						"manager": {Variant: "default", Label: "Manager"},
						"user":    {Variant: "secondary", Label: "User"},
					}},
					{Name: "status", Label: "Status", Display: detail.DisplayBadge, Badges: map[string]detail.BadgeStyle{
						"active":   {Variant: "default", Label: "Active"},
						"inactive": {Variant: "destructive", Label: "Inactive"},
					}},
					{Name: "created", Label: "Member Since", Display: detail.DisplayDate},
				},
			},
		},
	}
}

// CustomerTableConfig describes the customer list table.
func CustomerTableConfig() table.Config {
	return table.Config{
		PageSize: 10,
		Columns: []table.Column{
			{Key: "firstName", Label: "First Name", Filterable: true},
			{Key: "lastName", Label: "Last Name", Filterable: true},
			{Key: "email", Label: "Email", Filterable: true},
			{Key: "company", Label: "Company", Filterable: true},
			{Key: "status", Label: "Status", Filterable: true},
			{Key: "priority", Label: "Priority"},
		},
	}
}

// UserTableConfig describes the account list table.
func UserTableConfig() table.Config {
	return table.Config{
		PageSize: 10,
		Columns: []table.Column{
			{Key: "name", Label: "Name", Filterable: true},
			{Key: "email", Label: "Email", Filterable: true},
			{Key: "role", Label: "Role", Filterable: true},
			{Key: "status", Label: "Status", Filterable: true},
		},
	}
}
