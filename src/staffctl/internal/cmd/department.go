package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bitswalk/staffdb/src/common/output"
	"github.com/bitswalk/staffdb/src/staffctl/internal/client"
	"github.com/spf13/cobra"
)

var departmentCmd = &cobra.Command{
	Use:     "department",
	Aliases: []string{"dept"},
	Short:   "Manage departments",
}

var departmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all departments",
	Args:  cobra.NoArgs,
	RunE:  runDepartmentList,
}

var departmentGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a department by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepartmentGet,
}

var departmentFindCmd = &cobra.Command{
	Use:   "find <name>",
	Short: "Find the first department with a name",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepartmentFind,
}

var departmentCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new department",
	Args:  cobra.NoArgs,
	RunE:  runDepartmentCreate,
}

var departmentUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a department",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepartmentUpdate,
}

var departmentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a department (its employees are kept)",
	Args:  cobra.ExactArgs(1),
	RunE:  runDepartmentDelete,
}

var departmentEmployeesCmd = &cobra.Command{
	Use:   "employees <id>",
	Short: "List the employees of a department",
	Long: `Lists the employees of a department.

With --source memory (the default) only employees the server has already
loaded are shown. Use --source storage to read them from the database.`,
	Args: cobra.ExactArgs(1),
	RunE: runDepartmentEmployees,
}

func init() {
	departmentCmd.AddCommand(departmentListCmd)
	departmentCmd.AddCommand(departmentGetCmd)
	departmentCmd.AddCommand(departmentFindCmd)
	departmentCmd.AddCommand(departmentCreateCmd)
	departmentCmd.AddCommand(departmentUpdateCmd)
	departmentCmd.AddCommand(departmentDeleteCmd)
	departmentCmd.AddCommand(departmentEmployeesCmd)

	// Create flags
	departmentCreateCmd.Flags().String("name", "", "Department name (required)")
	departmentCreateCmd.Flags().String("location", "", "Department location (required)")
	_ = departmentCreateCmd.MarkFlagRequired("name")
	_ = departmentCreateCmd.MarkFlagRequired("location")

	// Update flags
	departmentUpdateCmd.Flags().String("name", "", "Department name")
	departmentUpdateCmd.Flags().String("location", "", "Department location")

	// Employees flags
	departmentEmployeesCmd.Flags().String("source", "memory", "Where to look: memory or storage")
}

func printDepartment(d *client.Department) {
	output.PrintTable(
		[]string{"FIELD", "VALUE"},
		[][]string{
			{"ID", strconv.FormatInt(d.ID, 10)},
			{"Name", d.Name},
			{"Location", d.Location},
		},
	)
}

func runDepartmentList(cmd *cobra.Command, args []string) error {
	c := getClient()
	ctx := context.Background()

	resp, err := c.ListDepartments(ctx)
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		if resp.Count == 0 {
			output.PrintMessage("No departments found.")
			return nil
		}

		rows := make([][]string, len(resp.Departments))
		for i, d := range resp.Departments {
			rows[i] = []string{strconv.FormatInt(d.ID, 10), d.Name, d.Location}
		}
		output.PrintTable([]string{"ID", "NAME", "LOCATION"}, rows)
		return nil
	})
}

func runDepartmentGet(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	resp, err := getClient().GetDepartment(context.Background(), id)
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		printDepartment(resp)
		return nil
	})
}

func runDepartmentFind(cmd *cobra.Command, args []string) error {
	resp, err := getClient().FindDepartment(context.Background(), args[0])
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		printDepartment(resp)
		return nil
	})
}

func runDepartmentCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	location, _ := cmd.Flags().GetString("location")

	resp, err := getClient().CreateDepartment(context.Background(), &client.CreateDepartmentRequest{
		Name:     name,
		Location: location,
	})
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		output.PrintMessage(fmt.Sprintf("Department %q created (ID: %d)", resp.Name, resp.ID))
		return nil
	})
}

func runDepartmentUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	req := &client.UpdateDepartmentRequest{
		Name:     stringIfChanged(cmd, "name"),
		Location: stringIfChanged(cmd, "location"),
	}
	if req.Name == nil && req.Location == nil {
		return fmt.Errorf("nothing to update: set --name and/or --location")
	}

	resp, err := getClient().UpdateDepartment(context.Background(), id, req)
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		output.PrintMessage(fmt.Sprintf("Department %q updated.", resp.Name))
		return nil
	})
}

func runDepartmentDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	if err := getClient().DeleteDepartment(context.Background(), id); err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), map[string]interface{}{"message": "Department deleted", "id": id}, func() error {
		output.PrintMessage(fmt.Sprintf("Department %d deleted.", id))
		return nil
	})
}

func runDepartmentEmployees(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	source, _ := cmd.Flags().GetString("source")

	resp, err := getClient().DepartmentEmployees(context.Background(), id, source)
	if err != nil {
		return err
	}

	return output.PrintFormatted(getOutputFormat(), resp, func() error {
		if resp.Count == 0 {
			output.PrintMessage(fmt.Sprintf("No employees found in department %d (source: %s).", id, resp.Source))
			return nil
		}
		printEmployees(resp.Employees)
		return nil
	})
}
