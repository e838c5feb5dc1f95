// Package catalog holds the immutable data tables the simulation reads:
// post-graduation paths, vehicles, side jobs, and life goals. Tables are
// loaded once and injected at construction; nothing here mutates after load.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Catalog struct {
	Paths    []Path    `yaml:"paths" json:"paths"`
	Vehicles []Vehicle `yaml:"vehicles" json:"vehicles"`
	SideJobs []SideJob `yaml:"side_jobs" json:"side_jobs"`
	Goals    []Goal    `yaml:"goals" json:"goals"`
}

// Path is a post-graduation track. UpfrontCost is financed as starting debt.
// MonthlySalary is earned while on the path; CareerSalary applies once
// DurationMonths elapse. A zero duration path never transitions.
type Path struct {
	ID             string      `yaml:"id" json:"id"`
	Name           string      `yaml:"name" json:"name"`
	Description    string      `yaml:"description" json:"description"`
	UpfrontCost    float64     `yaml:"upfront_cost" json:"upfront_cost"`
	DurationMonths int         `yaml:"duration_months" json:"duration_months"`
	MonthlySalary  float64     `yaml:"monthly_salary" json:"monthly_salary"`
	CareerSalary   float64     `yaml:"career_salary" json:"career_salary"`
	MonthlyCosts   LivingCosts `yaml:"monthly_costs" json:"monthly_costs"`
	Student        bool        `yaml:"student" json:"student"`
}

type LivingCosts struct {
	Housing   float64 `yaml:"housing" json:"housing"`
	Food      float64 `yaml:"food" json:"food"`
	Transport float64 `yaml:"transport" json:"transport"`
	Utilities float64 `yaml:"utilities" json:"utilities"`
	Phone     float64 `yaml:"phone" json:"phone"`
	Insurance float64 `yaml:"insurance" json:"insurance"`
}

func (lc LivingCosts) Total() float64 {
	return lc.Housing + lc.Food + lc.Transport + lc.Utilities + lc.Phone + lc.Insurance
}

type Vehicle struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Price       float64 `yaml:"price" json:"price"`
}

// SideJob is part-time work available alongside a path. Monthly income is
// derived from the hourly rate at four weeks per month.
type SideJob struct {
	ID           string  `yaml:"id" json:"id"`
	Name         string  `yaml:"name" json:"name"`
	HourlyRate   float64 `yaml:"hourly_rate" json:"hourly_rate"`
	HoursPerWeek int     `yaml:"hours_per_week" json:"hours_per_week"`
}

func (j SideJob) IncomePerMonth() float64 {
	return j.HourlyRate * float64(j.HoursPerWeek) * 4
}

type Goal struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

func (c *Catalog) PathByID(id string) (Path, bool) {
	for _, p := range c.Paths {
		if p.ID == id {
			return p, true
		}
	}
	return Path{}, false
}

func (c *Catalog) VehicleByID(id string) (Vehicle, bool) {
	for _, v := range c.Vehicles {
		if v.ID == id {
			return v, true
		}
	}
	return Vehicle{}, false
}

func (c *Catalog) SideJobByID(id string) (SideJob, bool) {
	for _, j := range c.SideJobs {
		if j.ID == id {
			return j, true
		}
	}
	return SideJob{}, false
}

func (c *Catalog) GoalByID(id string) (Goal, bool) {
	for _, g := range c.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return Goal{}, false
}

func (c *Catalog) Validate() error {
	if len(c.Paths) == 0 {
		return fmt.Errorf("catalog has no paths")
	}
	seen := map[string]bool{}
	for _, p := range c.Paths {
		if p.ID == "" {
			return fmt.Errorf("path with empty id")
		}
		if seen["path:"+p.ID] {
			return fmt.Errorf("duplicate path id: %s", p.ID)
		}
		seen["path:"+p.ID] = true
		if p.UpfrontCost < 0 || p.MonthlySalary < 0 || p.CareerSalary < 0 {
			return fmt.Errorf("path %s has negative amounts", p.ID)
		}
	}
	for _, v := range c.Vehicles {
		if v.ID == "" {
			return fmt.Errorf("vehicle with empty id")
		}
		if seen["vehicle:"+v.ID] {
			return fmt.Errorf("duplicate vehicle id: %s", v.ID)
		}
		seen["vehicle:"+v.ID] = true
		if v.Price <= 0 {
			return fmt.Errorf("vehicle %s has non-positive price", v.ID)
		}
	}
	for _, j := range c.SideJobs {
		if j.ID == "" {
			return fmt.Errorf("side job with empty id")
		}
		if seen["sidejob:"+j.ID] {
			return fmt.Errorf("duplicate side job id: %s", j.ID)
		}
		seen["sidejob:"+j.ID] = true
		if j.HourlyRate <= 0 || j.HoursPerWeek <= 0 {
			return fmt.Errorf("side job %s has non-positive pay", j.ID)
		}
	}
	for _, g := range c.Goals {
		if g.ID == "" {
			return fmt.Errorf("goal with empty id")
		}
		if seen["goal:"+g.ID] {
			return fmt.Errorf("duplicate goal id: %s", g.ID)
		}
		seen["goal:"+g.ID] = true
	}
	return nil
}

// Load reads a catalog from a YAML file. Sections left empty fall back to
// the built-in tables so a partial file can override just one table.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	def := Default()
	if len(c.Paths) == 0 {
		c.Paths = def.Paths
	}
	if len(c.Vehicles) == 0 {
		c.Vehicles = def.Vehicles
	}
	if len(c.SideJobs) == 0 {
		c.SideJobs = def.SideJobs
	}
	if len(c.Goals) == 0 {
		c.Goals = def.Goals
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
