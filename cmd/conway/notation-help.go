package main

const notationHelp = `Conway Notation
===============

A notation string is a sequence of operators followed by an optional seed,
for example dakC. Operators run right to left, so dakC is the dual of the
ambo of the kis of a cube. Use -r to run them left to right instead.

Seeds
-----
T        tetrahedron
C        cube
O        octahedron
I        icosahedron
D        dodecahedron
P<n>     prism with n-sided base (n >= 3)
A<n>     antiprism with n-sided base (n >= 3)
Y<n>     pyramid with n-sided base (n >= 3)

If no seed is given, the polyhedron is read in OFF format from input_file,
or from standard input.

Operators
---------
d        dual: faces become vertices and vertices become faces
a        ambo: truncate vertices to the edge midpoints
k        kis: raise a pyramid on every face
k<n>     kis on n-sided faces only
g        gyro: split each face into pentagons around its centre
p        propellor: rotate each face, adding a ring of quadrilaterals
t        truncate: cut every vertex, same as dkd
t<n>     truncate vertices of degree n only, same as dk<n>d
j        join: dual of ambo, same as da
o        ortho: dual of expand, same as jj
e        expand: ambo of ambo, same as aa
s        snub: dual of gyro, same as dg
m        meta: kis of join, same as kj
b        bevel: dual of meta, same as ta
r        reflect: mirror image
x        null: no change, but still planarized

The notation is simplified before it runs, so redundant operations such as
dd, or a dual applied directly to a seed whose dual is also a seed, are
removed. Use -d to run the notation as written.

With -t, t runs as a direct vertex truncation cutting each edge at 1/3, and
a as a truncation at 1/2, instead of through duals and kis.

Planarization
-------------
Every operation is followed by a planarization pass (-p, -i, -j) that moves
vertices until every face is flat. The final product can also be
canonicalized (-c, -n, -l) so every edge is tangent to the unit sphere.
Iteration limits and thresholds are given as negative exponents, so -l 12
stops canonicalizing once no vertex moves more than 1e-12.
`
