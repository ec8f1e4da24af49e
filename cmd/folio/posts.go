package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/blog"
)

// newPostsCmd creates the posts command and its subcommands
func newPostsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect the blog posts",
		Long:  `List, search and show the published posts of the posts directory.`,
	}

	cmd.AddCommand(newPostsListCmd(opts))
	cmd.AddCommand(newPostsTagsCmd(opts))
	cmd.AddCommand(newPostsSearchCmd(opts))
	cmd.AddCommand(newPostsShowCmd(opts))
	return cmd
}

func newPostsListCmd(opts *rootOptions) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := openBlog(cmd.Context(), opts.cfg, false)
			if err != nil {
				return err
			}
			var posts []blog.Post
			if tag != "" {
				posts, err = src.ByTag(cmd.Context(), tag)
			} else {
				posts, err = src.All(cmd.Context())
			}
			if err != nil {
				return err
			}
			printPosts(cmd.OutOrStdout(), posts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&tag, "tag", "t", "", "only posts with this tag")
	return cmd
}

func newPostsTagsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := openBlog(cmd.Context(), opts.cfg, false)
			if err != nil {
				return err
			}
			tags, err := src.Tags(cmd.Context())
			if err != nil {
				return err
			}
			for _, tag := range tags {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}
}

func newPostsSearchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search titles, descriptions and tags",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _, err := openBlog(cmd.Context(), opts.cfg, false)
			if err != nil {
				return err
			}
			posts, err := src.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if len(posts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), warningText("No posts found"))
				return nil
			}
			printPosts(cmd.OutOrStdout(), posts)
			return nil
		},
	}
}

func newPostsShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <slug>",
		Short: "Print a post with its neighbours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			src, _, err := openBlog(ctx, opts.cfg, false)
			if err != nil {
				return err
			}
			post, err := src.BySlug(ctx, args[0])
			if err != nil {
				return err
			}
			content, err := src.Content(ctx, post.Slug)
			if err != nil {
				return err
			}
			adj, err := src.Adjacent(ctx, post.Slug)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headerText(post.Title))
			fmt.Fprintln(out, infoText(post.Date.Format(blog.DateLayout)+"  "+strings.Join(post.Tags, ", ")))
			fmt.Fprintln(out)
			fmt.Fprintln(out, strings.TrimRight(content, "\n"))
			fmt.Fprintln(out)
			if adj.Prev != nil {
				fmt.Fprintf(out, "prev: %s\n", adj.Prev.Slug)
			}
			if adj.Next != nil {
				fmt.Fprintf(out, "next: %s\n", adj.Next.Slug)
			}
			return nil
		},
	}
}

func printPosts(w io.Writer, posts []blog.Post) {
	for _, p := range posts {
		line := fmt.Sprintf("%s  %-24s %s", p.Date.Format(blog.DateLayout), p.Slug, emphasisText(p.Title))
		if len(p.Tags) > 0 {
			line += "  " + infoText("["+strings.Join(p.Tags, ", ")+"]")
		}
		fmt.Fprintln(w, line)
	}
}
