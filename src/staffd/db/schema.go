package db

const departmentsDDL = `
	CREATE TABLE IF NOT EXISTS departments (
		id INTEGER PRIMARY KEY,
		name TEXT,
		location TEXT
	)`

const employeesDDL = `
	CREATE TABLE IF NOT EXISTS employees (
		id INTEGER PRIMARY KEY,
		name TEXT,
		job_title TEXT,
		department_id INTEGER,
		FOREIGN KEY (department_id) REFERENCES departments(id)
	)`

type table struct {
	name    string
	ddl     string
	columns string
}

// tables lists every table in dependency order
var tables = []table{
	{name: "departments", ddl: departmentsDDL, columns: "id, name, location"},
	{name: "employees", ddl: employeesDDL, columns: "id, name, job_title, department_id"},
}
