package catalog

import (
	"encoding/json"
	"math"

	"art-customizer/models"
)

// Apply returns a copy of opts with one field changed. The value must be a
// member of the field's domain; on error opts is returned unchanged.
func (c *Catalog) Apply(opts models.CustomizationOptions, category models.Category, field string, value interface{}) (models.CustomizationOptions, error) {
	next := opts
	invalid := func(reason string) (models.CustomizationOptions, error) {
		return opts, &models.InvalidOptionValueError{Category: category, Field: field, Value: value, Reason: reason}
	}

	switch category {
	case models.CategoryFrame:
		switch field {
		case "style":
			key, ok := c.keyValue(DimensionFrameStyle, value)
			if !ok {
				return invalid("unknown frame style")
			}
			next.Frame.Style = key
		case "color":
			key, ok := c.keyValue(DimensionFrameColor, value)
			if !ok {
				return invalid("unknown frame color")
			}
			next.Frame.Color = key
		case "width":
			s, ok := value.(string)
			if !ok || !containsFrameWidth(models.FrameWidth(s)) {
				return invalid("must be thin, medium or thick")
			}
			next.Frame.Width = models.FrameWidth(s)
		default:
			return invalid("unknown field")
		}

	case models.CategoryMat:
		switch field {
		case "enabled":
			b, ok := value.(bool)
			if !ok {
				return invalid("must be a boolean")
			}
			next.Mat.Enabled = b
		case "color":
			key, ok := c.keyValue(DimensionMatColor, value)
			if !ok {
				return invalid("unknown mat color")
			}
			next.Mat.Color = key
		case "width":
			s, ok := value.(string)
			if !ok || !containsMatWidth(models.MatWidth(s)) {
				return invalid("must be narrow, standard or wide")
			}
			next.Mat.Width = models.MatWidth(s)
		default:
			return invalid("unknown field")
		}

	case models.CategoryGlass:
		switch field {
		case "type":
			key, ok := c.keyValue(DimensionGlassType, value)
			if !ok {
				return invalid("unknown glass type")
			}
			next.Glass.Type = key
		case "glareReduction":
			b, ok := value.(bool)
			if !ok {
				return invalid("must be a boolean")
			}
			next.Glass.GlareReduction = b
		default:
			return invalid("unknown field")
		}

	case models.CategorySize:
		switch field {
		case "scale":
			n, ok := intValue(value)
			if !ok {
				return invalid("must be an integer")
			}
			if n < models.MinScale || n > models.MaxScale {
				return invalid("must be between 50 and 200")
			}
			next.Size.Scale = n
		case "aspectRatio":
			key, ok := c.keyValue(DimensionAspectRatio, value)
			if !ok {
				return invalid("unknown aspect ratio")
			}
			next.Size.AspectRatio = key
		default:
			return invalid("unknown field")
		}

	case models.CategoryMounting:
		switch field {
		case "type":
			key, ok := c.keyValue(DimensionMounting, value)
			if !ok {
				return invalid("unknown mounting type")
			}
			next.Mounting.Type = key
		case "hardware":
			s, ok := value.(string)
			if !ok || !containsHardware(models.Hardware(s)) {
				return invalid("must be standard, premium or hidden")
			}
			next.Mounting.Hardware = models.Hardware(s)
		default:
			return invalid("unknown field")
		}

	case models.CategoryMaterial:
		if field != "type" {
			return invalid("unknown field")
		}
		key, ok := c.keyValue(DimensionMaterial, value)
		if !ok {
			return invalid("unknown material")
		}
		next.Material.Type = key

	default:
		return invalid("unknown category")
	}

	return next, nil
}

func (c *Catalog) keyValue(dim Dimension, value interface{}) (string, bool) {
	s, ok := value.(string)
	if !ok || !c.Has(dim, s) {
		return "", false
	}
	return s, true
}

// intValue accepts the numeric forms a decoded JSON body or a Go caller may use
func intValue(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}
