package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bitswalk/staffdb/src/common/output"
	"github.com/bitswalk/staffdb/src/staffctl/internal/client"
	"github.com/spf13/cobra"
)

var employeeCmd = &cobra.Command{
	Use:     "employee",
	Aliases: []string{"emp"},
	Short:   "Manage employees",
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all employees",
	Args:  cobra.NoArgs,
	RunE:  runEmployeeList,
}

var employeeGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get an employee by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmployeeGet,
}

var employeeFindCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Find the first employee with a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmployeeFind,
}

var employeeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new employee",
	Args:  cobra.NoArgs,
	RunE:  runEmployeeCreate,
}

var employeeUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an employee",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmployeeUpdate,
}

var employeeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an employee",
	Args:  cobra.ExactArgs(1),
	RunE:  runEmployeeDelete,
}

func init() {
	employeeCmd.AddCommand(employeeListCmd)
	employeeCmd.AddCommand(employeeGetCmd)
	employeeCmd.AddCommand(employeeFindCmd)
	employeeCmd.AddCommand(employeeCreateCmd)
	employeeCmd.AddCommand(employeeUpdateCmd)
	employeeCmd.AddCommand(employeeDeleteCmd)

	// Create flags
	employeeCreateCmd.Flags().String("name", "", "Employee name (required)")
	employeeCreateCmd.Flags().String("job-title", "", "Job title (required)")
	employeeCreateCmd.Flags().Int64("department-id", 0, "Department ID (required)")
	_ = employeeCreateCmd.MarkFlagRequired("name")
	_ = employeeCreateCmd.MarkFlagRequired("job-title")
	_ = employeeCreateCmd.MarkFlagRequired("department-id")

	// Update flags
	employeeUpdateCmd.Flags().String("name", "", "Employee name")
	employeeUpdateCmd.Flags().String("job-title", "", "Job title")
	employeeUpdateCmd.Flags().Int64("department-id", 0, "Department ID")
}

func printEmployees(employees []client.Employee) {
	rows := make([][]string, len(employees))
	for i, e := range employees {
		rows[i] = []string{
			strconv.FormatInt(e.ID, 10),
			e.Name,
			e.JobTitle,
			strconv.FormatInt(e.DepartmentID, 10),
		}
	}
	output.PrintTable([]string{"ID", "NAME", "JOB TITLE", "DEPARTMENT"}, rows)
}

func printEmployee(e *client.Employee) {
	output.PrintTable(
		[]string{"FIELD", "VALUE"},
		[][]string{
			{"ID", strconv.FormatInt(e.ID, 10)},
			{"Name", e.Name},
			{"Job Title", e.JobTitle},
			{"Department ID", strconv.FormatInt(e.DepartmentID, 10)},
		},
	)
}

func runEmployeeList(cmd *cobra.Command, args []string) error {
	resp, err := getClient().ListEmployees(context.Background())
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		if resp.Count == 0 {
			output.PrintMessage("No employees found.")
			return nil
		}
		printEmployees(resp.Employees)
		return nil
	})
}

func runEmployeeGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	resp, err := getClient().GetEmployee(context.Background(), id)
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		printEmployee(resp)
		return nil
	})
}

func runEmployeeFind(cmd *cobra.Command, args []string) error {
	resp, err := getClient().FindEmployee(context.Background(), args[0])
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		printEmployee(resp)
		return nil
	})
}

func runEmployeeCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	jobTitle, _ := cmd.Flags().GetString("job-title")
	departmentID, _ := cmd.Flags().GetInt64("department-id")

	resp, err := getClient().CreateEmployee(context.Background(), &client.CreateEmployeeRequest{
		Name:         name,
		JobTitle:     jobTitle,
		DepartmentID: departmentID,
	})
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		output.PrintMessage(fmt.Sprintf("Employee %q created (ID: %d)", resp.Name, resp.ID))
		return nil
	})
}

func runEmployeeUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	req := &client.UpdateEmployeeRequest{
		Name:     stringIfChanged(cmd, "name"),
		JobTitle: stringIfChanged(cmd, "job-title"),
	}
	if cmd.Flags().Changed("department-id") {
		v, _ := cmd.Flags().GetInt64("department-id")
		req.DepartmentID = &v
	}
	if req.Name == nil && req.JobTitle == nil && req.DepartmentID == nil {
		return fmt.Errorf("nothing to update: set --name, --job-title and/or --department-id")
	}

	resp, err := getClient().UpdateEmployee(context.Background(), id, req)
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		output.PrintMessage(fmt.Sprintf("Employee %q updated.", resp.Name))
		return nil
	})
}

func runEmployeeDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := getClient().DeleteEmployee(context.Background(), id); err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), map[string]interface{}{"message": "Employee deleted", "id": id}, func() error {
		output.PrintMessage(fmt.Sprintf("Employee %d deleted.", id))
		return nil
	})
}
